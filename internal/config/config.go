// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// AppConfig is the top-level application configuration. It is populated by
// [LoadAppConfig] from config files, secrets, a dotenv file, environment
// variables and explicit values.
//
// Struct tags:
//   - toml: key of the field in the configuration tree; environment
//     variables use the same name upper-cased (APP_APP_NAME,
//     APP_MODEL__TOP_P).
//   - validate: constraints checked after all sources are merged.
type AppConfig struct {
	// AppName is the human readable application name.
	AppName string `toml:"app_name" validate:"required"`

	// Model holds the language model parameters sent with every call.
	Model ModelConfig `toml:"model"`

	// Provider holds the connection settings of the completion API.
	Provider ProviderConfig `toml:"provider"`

	// Log holds logger settings.
	Log LogConfig `toml:"log"`
}

// ModelConfig holds the parameters of a chat-completion model.
type ModelConfig struct {
	// ID is the model identifier, e.g. "gpt-4o-mini".
	ID string `toml:"id" validate:"required"`

	// TopP is the nucleus-sampling parameter.
	TopP float64 `toml:"top_p" validate:"gte=0,lte=1"`

	// MaxTokens caps the number of generated tokens.
	MaxTokens int `toml:"max_tokens" validate:"gt=0"`

	// Temperature controls sampling randomness.
	Temperature float64 `toml:"temperature" validate:"gte=0,lte=2"`
}

// ProviderConfig holds the connection settings of an OpenAI-compatible API.
type ProviderConfig struct {
	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string `toml:"base_url" validate:"omitempty,url"`

	// APIKey is the bearer token. When empty, OPENAI_API_KEY is used.
	APIKey string `toml:"api_key"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=trace debug info warn error"`
	Format string `toml:"format" validate:"oneof=json console"`
}

// DefaultAppConfig returns the defaults applied before any source is read.
// The model ID has no default and must be configured.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		AppName: "MyCoolApp",
		Model: ModelConfig{
			TopP:        1,
			MaxTokens:   100,
			Temperature: 0.7,
		},
		Provider: ProviderConfig{
			BaseURL: "https://api.openai.com/v1",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadAppConfig loads and validates an [AppConfig] starting from
// [DefaultAppConfig]. See [Load] for the source precedence.
func LoadAppConfig(opts ...Option) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := Load(&cfg, opts...); err != nil {
		return nil, fmt.Errorf("error loading app config: %w", err)
	}
	return &cfg, nil
}
