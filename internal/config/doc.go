// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration trees are produced by [Loader] implementations (TOML, YAML
// and JSON files, environment variables, dotenv files, secret files) and
// combined by [DeepMerge]: nested tables merge key by key, every other value
// is replaced. Sources are assembled into a [Chain] ordered by priority
// (highest first):
//  1. Explicit values
//  2. Environment variables
//  3. Dotenv file
//  4. Secrets directory
//  5. Config files (config.default.toml, config.{env}.toml, config.local.toml)
//
// The merged tree is decoded into a typed struct and validated; all
// violations are reported together in a [*ValidationError].
//
// The main entry points are [Load] for arbitrary settings structs and
// [LoadAppConfig] for the application's [AppConfig].
package config
