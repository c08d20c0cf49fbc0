// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Defaults for the environment-variable mapping.
const (
	DefaultPrefix    = "APP_"
	DefaultDelimiter = "__"
)

// Environment holds the bootstrap variables that decide where the rest of
// the configuration is read from. Field names are resolved with the
// application prefix, e.g. APP_ENV and APP_CONFIG_DIR for prefix "APP_".
type Environment struct {
	// Name selects the environment-specific file config.{Name}.toml.
	Name string `env:"ENV" envDefault:"development"`
	// ConfigDir is the directory holding the config.*.toml files.
	ConfigDir string `env:"CONFIG_DIR" envDefault:"."`
	// DotenvFile is the dotenv file consulted for prefixed variables.
	DotenvFile string `env:"DOTENV_FILE" envDefault:".env"`
	// SecretsDir holds one file per secret; empty disables the source.
	SecretsDir string `env:"SECRETS_DIR"`
}

// ParseEnvironment reads the bootstrap variables for prefix from environ
// (os.Environ() when nil) using the caarlos0/env library.
func ParseEnvironment(prefix string, environ map[string]string) (Environment, error) {
	var e Environment

	opts := env.Options{Prefix: prefix}
	if environ != nil {
		opts.Environment = environ
	}

	if err := env.ParseWithOptions(&e, opts); err != nil {
		return Environment{}, fmt.Errorf("error getting env configs: %w", err)
	}

	e.Name = strings.ToLower(strings.TrimSpace(e.Name))
	return e, nil
}

// EnvLoader maps prefixed environment variables to a configuration tree.
//
// The prefix is matched case-insensitively and stripped; the remainder is
// lower-cased and split on the delimiter into a key path, so with prefix
// "APP_" and delimiter "__" the variable APP_MODEL__TOP_P=0.5 becomes
// {"model": {"top_p": "0.5"}}. Values that hold a JSON object or array are
// decoded into nested trees and lists.
type EnvLoader struct {
	prefix    string
	delimiter string
	environ   func() []string
}

// NewEnvLoader returns an [EnvLoader] over the process environment.
func NewEnvLoader(prefix, delimiter string) *EnvLoader {
	return NewEnvLoaderFrom(prefix, delimiter, os.Environ)
}

// NewEnvLoaderFrom returns an [EnvLoader] over a custom KEY=VALUE list.
func NewEnvLoaderFrom(prefix, delimiter string, environ func() []string) *EnvLoader {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &EnvLoader{prefix: prefix, delimiter: delimiter, environ: environ}
}

// Name implements [Loader].
func (l *EnvLoader) Name() string {
	return fmt.Sprintf("env(prefix=%s)", l.prefix)
}

// Load implements [Loader].
func (l *EnvLoader) Load() (Values, error) {
	flat := make(map[string]string)
	for _, kv := range l.environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		flat[key] = value
	}
	return ReadOnly(flatToTree(flat, l.prefix, l.delimiter)), nil
}

// flatToTree converts flat KEY=VALUE pairs carrying prefix into a nested
// tree. Keys are processed in sorted order so that conflicts between a
// scalar and a nested path (APP_MODEL vs APP_MODEL__ID) resolve the same
// way on every run: the nested path wins.
func flatToTree(flat map[string]string, prefix, delimiter string) map[string]any {
	tree := make(map[string]any)

	keys := make([]string, 0, len(flat))
	for key := range flat {
		if hasPrefixFold(key, prefix) && len(key) > len(prefix) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	for _, key := range keys {
		path := strings.Split(strings.ToLower(key[len(prefix):]), delimiter)
		if slices.Contains(path, "") {
			continue
		}
		setPath(tree, path, parseEnvValue(flat[key]))
	}

	return tree
}

func setPath(tree map[string]any, path []string, value any) {
	cur := tree
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[key] = next
		}
		cur = next
	}

	last := path[len(path)-1]
	if existing, ok := cur[last].(map[string]any); ok {
		if incoming, ok := value.(map[string]any); ok {
			DeepMerge(ReadOnly(incoming), existing)
		}
		return
	}
	cur[last] = value
}

func parseEnvValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return raw
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return raw
	}
	return decoded
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
