// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/typedconf/internal/logger"
)

// Option customises [Load].
type Option func(*options)

type options struct {
	prefix    string
	delimiter string
	values    map[string]any
	environ   map[string]string
	configDir *string
	envName   *string
	dotenv    *string
	secrets   *string
	files     []Loader
	extra     []extraSource
	log       *logger.Logger
}

type extraSource struct {
	priority int
	loader   Loader
}

// WithPrefix sets the environment variable prefix (default "APP_").
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithDelimiter sets the nested-key delimiter for environment variables
// (default "__").
func WithDelimiter(delimiter string) Option {
	return func(o *options) { o.delimiter = delimiter }
}

// WithValues supplies explicit values. They have the highest priority.
func WithValues(values map[string]any) Option {
	return func(o *options) { o.values = values }
}

// WithEnviron replaces the process environment, for both bootstrap
// variables and the environment source.
func WithEnviron(environ map[string]string) Option {
	return func(o *options) { o.environ = environ }
}

// WithConfigDir overrides the directory of the conventional config files.
func WithConfigDir(dir string) Option {
	return func(o *options) { o.configDir = &dir }
}

// WithEnvName overrides the environment name taken from {PREFIX}ENV.
func WithEnvName(name string) Option {
	return func(o *options) { o.envName = &name }
}

// WithDotenvFile overrides the dotenv file; an empty path disables it.
func WithDotenvFile(path string) Option {
	return func(o *options) { o.dotenv = &path }
}

// WithSecretsDir overrides the secrets directory; an empty path disables it.
func WithSecretsDir(dir string) Option {
	return func(o *options) { o.secrets = &dir }
}

// WithFiles replaces the conventional file sources. Loaders are given lowest
// priority first.
func WithFiles(loaders ...Loader) Option {
	return func(o *options) { o.files = loaders }
}

// WithSource inserts an additional source into the precedence chain at the
// given priority index (0 is the highest priority).
func WithSource(priority int, l Loader) Option {
	return func(o *options) { o.extra = append(o.extra, extraSource{priority: priority, loader: l}) }
}

// WithLogger sets the logger used while loading.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// Load assembles the configuration into target, a pointer to a struct whose
// fields carry `toml` and `validate` tags. Values already set on target are
// the defaults.
//
// Sources in priority order (highest first):
//  1. explicit values ([WithValues])
//  2. environment variables ({PREFIX}{KEY}, nested keys joined by the delimiter)
//  3. the dotenv file ({PREFIX}DOTENV_FILE, default .env)
//  4. the secrets directory ({PREFIX}SECRETS_DIR)
//  5. config.default.toml (required), config.{env}.toml and config.local.toml
//
// Returns an error wrapping [ErrMissingRequiredSource] when a required file
// is absent, or a [*ValidationError] listing every invalid field.
func Load(target any, opts ...Option) error {
	o := options{prefix: DefaultPrefix, delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(&o)
	}

	return newSettingsBuilder(o).
		withBootstrap().
		withValues().
		withEnv().
		withDotenv().
		withSecrets().
		withFiles().
		withExtra().
		build(target)
}

type settingsBuilder struct {
	opts  options
	env   Environment
	chain Chain
	log   *logger.Logger
	err   error
}

func newSettingsBuilder(opts options) *settingsBuilder {
	return &settingsBuilder{
		opts:  opts,
		chain: make(Chain, 0, 5),
		log:   logger.OrNop(opts.log),
	}
}

func (b *settingsBuilder) build(target any) error {
	if b.err != nil {
		return fmt.Errorf("error occurred during building config: %w", b.err)
	}

	b.log.Debug().Str("chain", b.chain.String()).Msg("resolving config sources")

	tree, err := b.chain.Resolve(b.log)
	if err != nil {
		return fmt.Errorf("error loading config sources: %w", err)
	}

	return Decode(tree, target)
}

func (b *settingsBuilder) withBootstrap() *settingsBuilder {
	env, err := ParseEnvironment(b.opts.prefix, b.opts.environ)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	if b.opts.configDir != nil {
		env.ConfigDir = *b.opts.configDir
	}
	if b.opts.envName != nil {
		env.Name = *b.opts.envName
	}
	if b.opts.dotenv != nil {
		env.DotenvFile = *b.opts.dotenv
	}
	if b.opts.secrets != nil {
		env.SecretsDir = *b.opts.secrets
	}

	b.env = env
	b.log.Debug().Str("env", env.Name).Str("config_dir", env.ConfigDir).Msg("resolved config environment")
	return b
}

func (b *settingsBuilder) withValues() *settingsBuilder {
	if len(b.opts.values) > 0 {
		b.chain = append(b.chain, Static("values", b.opts.values))
	}
	return b
}

func (b *settingsBuilder) withEnv() *settingsBuilder {
	loader := NewEnvLoader(b.opts.prefix, b.opts.delimiter)
	if b.opts.environ != nil {
		environ := b.opts.environ
		loader = NewEnvLoaderFrom(b.opts.prefix, b.opts.delimiter, func() []string {
			pairs := make([]string, 0, len(environ))
			for k, v := range environ {
				pairs = append(pairs, k+"="+v)
			}
			return pairs
		})
	}

	b.chain = append(b.chain, loader)
	return b
}

func (b *settingsBuilder) withDotenv() *settingsBuilder {
	b.chain = append(b.chain, NewDotenvLoader(b.env.DotenvFile, b.opts.prefix, b.opts.delimiter, b.log))
	return b
}

func (b *settingsBuilder) withSecrets() *settingsBuilder {
	b.chain = append(b.chain, NewSecretsLoader(b.env.SecretsDir, b.opts.prefix, b.opts.delimiter, b.log))
	return b
}

func (b *settingsBuilder) withFiles() *settingsBuilder {
	files := b.opts.files
	if files == nil {
		files = DefaultFiles(b.env.ConfigDir, b.env.Name, b.log)
	}

	b.chain = append(b.chain, Layered("files", b.log, files...))
	return b
}

func (b *settingsBuilder) withExtra() *settingsBuilder {
	for _, extra := range b.opts.extra {
		b.chain = b.chain.Insert(extra.priority, extra.loader)
	}
	return b
}
