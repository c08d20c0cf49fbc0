package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/MKhiriev/typedconf/internal/logger"
)

// Chain is an ordered list of configuration sources, highest priority
// first. Resolving a chain folds it from the lowest-priority end with
// [LoadSources], so a source earlier in the chain wins on conflicting keys
// and nested trees merge key by key.
type Chain []Loader

// Resolve loads every source and returns the merged tree.
func (c Chain) Resolve(log *logger.Logger) (map[string]any, error) {
	lowestFirst := slices.Clone(c)
	slices.Reverse(lowestFirst)
	return LoadSources(log, lowestFirst...)
}

// Insert returns a copy of the chain with l placed at priority index i
// (0 is the highest priority). Out-of-range indexes clamp to the ends.
func (c Chain) Insert(i int, l Loader) Chain {
	i = max(0, min(i, len(c)))
	return slices.Insert(slices.Clone(c), i, l)
}

// String lists source names from highest to lowest priority.
func (c Chain) String() string {
	names := make([]string, 0, len(c))
	for _, l := range c {
		names = append(names, l.Name())
	}
	return strings.Join(names, " > ")
}

// Layered combines several loaders into one: Load merges them in order with
// [LoadSources] (later wins). It is used to present the file sources as one
// entry of a [Chain].
func Layered(name string, log *logger.Logger, loaders ...Loader) Loader {
	return LoaderFunc{
		SourceName: name,
		Fn: func() (Values, error) {
			merged, err := LoadSources(log, loaders...)
			if err != nil {
				return Empty(), err
			}
			return ReadOnly(merged), nil
		},
	}
}

// DefaultFiles returns the conventional file sources inside dir, lowest
// priority first: the required config.default.toml, the optional
// config.{envName}.toml and the optional config.local.toml.
func DefaultFiles(dir, envName string, log *logger.Logger) []Loader {
	if envName == "" {
		envName = "development"
	}
	return []Loader{
		NewTOMLFileLoader(filepath.Join(dir, "config.default.toml"), true, log),
		NewTOMLFileLoader(filepath.Join(dir, fmt.Sprintf("config.%s.toml", envName)), false, log),
		NewTOMLFileLoader(filepath.Join(dir, "config.local.toml"), false, log),
	}
}
