// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"

	"github.com/MKhiriev/typedconf/internal/logger"
)

// DeepMerge merges src into dst and returns dst.
//
// For every key in src:
//   - a nested tree merges key by key into an existing nested map in dst;
//   - a nested tree replaces any other value in dst with a deep copy, so dst
//     never shares structure with src;
//   - scalars and lists overwrite the value in dst. Lists are never merged
//     element-wise.
//
// A nil dst is allocated.
func DeepMerge(src Values, dst map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, src.Len())
	}

	src.Range(func(key string, value any) bool {
		nested, isTree := value.(Values)
		if !isTree {
			dst[key] = value
			return true
		}

		if existing, ok := dst[key].(map[string]any); ok {
			DeepMerge(nested, existing)
			return true
		}

		dst[key] = nested.Map()
		return true
	})

	return dst
}

// LoadSources loads every loader in order and deep-merges the results into
// a fresh map that the caller owns. Later loaders win on conflicting keys.
//
// A loader that fails is logged and skipped so the remaining sources still
// contribute. The only exception is [ErrMissingRequiredSource]: it is
// returned immediately together with a nil map.
func LoadSources(log *logger.Logger, loaders ...Loader) (map[string]any, error) {
	log = logger.OrNop(log)
	log.Debug().Int("sources", len(loaders)).Msg("loading configuration sources")

	merged := make(map[string]any)
	for _, loader := range loaders {
		values, err := loader.Load()
		if err != nil {
			if errors.Is(err, ErrMissingRequiredSource) {
				return nil, err
			}
			log.Error().Err(err).Str("source", loader.Name()).Msg("unexpected error loading configuration source, skipping")
			continue
		}

		DeepMerge(values, merged)
	}

	log.Debug().Int("keys", len(merged)).Msg("finished loading and merging configuration sources")
	return merged, nil
}
