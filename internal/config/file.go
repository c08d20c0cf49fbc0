// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/typedconf/internal/logger"
)

// Format identifies the syntax of a configuration file.
type Format string

// Supported file formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat maps a format name or file extension (with or without the
// leading dot) to a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FileLoader loads one configuration file.
//
// A missing file yields an empty tree unless the loader is required, in
// which case Load fails with [ErrMissingRequiredSource]. A file that cannot
// be read or parsed is logged at warning level and yields an empty tree.
type FileLoader struct {
	path     string
	required bool
	format   Format
	log      *logger.Logger
}

// NewTOMLFileLoader returns a [FileLoader] for a TOML file.
func NewTOMLFileLoader(path string, required bool, log *logger.Logger) *FileLoader {
	return &FileLoader{path: path, required: required, format: FormatTOML, log: logger.OrNop(log)}
}

// NewFileLoader returns a [FileLoader] whose format is picked from the file
// extension. Unknown extensions are read as TOML.
func NewFileLoader(path string, required bool, log *logger.Logger) *FileLoader {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		format = FormatTOML
	}
	return &FileLoader{path: path, required: required, format: format, log: logger.OrNop(log)}
}

// Path returns the backing file path.
func (l *FileLoader) Path() string { return l.path }

// Required reports whether a missing file is fatal.
func (l *FileLoader) Required() bool { return l.required }

// Name implements [Loader].
func (l *FileLoader) Name() string {
	return fmt.Sprintf("file(%s, required=%t)", l.path, l.required)
}

// Load implements [Loader].
func (l *FileLoader) Load() (Values, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		if l.required {
			return Empty(), fmt.Errorf("%w: %s", ErrMissingRequiredSource, l.path)
		}
		l.log.Debug().Str("path", l.path).Msg("optional config file not found, skipping")
		return Empty(), nil
	}
	if err != nil {
		l.log.Warn().Err(fmt.Errorf("%w: %w", ErrMalformedSource, err)).Str("path", l.path).Msg("failed to read config file")
		return Empty(), nil
	}

	tree, err := decodeTree(l.format, data)
	if err != nil {
		l.log.Warn().Err(fmt.Errorf("%w: %w", ErrMalformedSource, err)).Str("path", l.path).Msg("failed to parse config file")
		return Empty(), nil
	}

	l.log.Debug().Str("path", l.path).Int("keys", len(tree)).Msg("loaded config file")
	return ReadOnly(tree), nil
}

func decodeTree(format Format, data []byte) (map[string]any, error) {
	tree := make(map[string]any)

	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &tree)
	case FormatYAML:
		err = yaml.Unmarshal(data, &tree)
	case FormatJSON:
		err = json.Unmarshal(data, &tree)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	// yaml.v3 leaves an empty document as a nil map
	if tree == nil {
		tree = make(map[string]any)
	}
	return normalizeTree(tree), nil
}

// normalizeTree converts decoder-specific container types into
// map[string]any and []any so that the merge engine sees a single shape.
func normalizeTree(tree map[string]any) map[string]any {
	for key, val := range tree {
		tree[key] = normalizeValue(val)
	}
	return tree
}

func normalizeValue(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		return normalizeTree(typed)
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for k, v := range typed {
			converted[fmt.Sprint(k)] = normalizeValue(v)
		}
		return converted
	case []any:
		for i, v := range typed {
			typed[i] = normalizeValue(v)
		}
		return typed
	case []map[string]any:
		converted := make([]any, len(typed))
		for i, v := range typed {
			converted[i] = normalizeTree(v)
		}
		return converted
	default:
		return val
	}
}
