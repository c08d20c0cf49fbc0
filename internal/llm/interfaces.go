// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package llm provides the model call adapter used to send chat messages to
// an OpenAI-compatible completion API.
//
// The primary abstraction is [LanguageModel], which decouples callers from
// the provider. The package ships an HTTP implementation ([NewOpenAIModel])
// built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrRateLimited]
// for 429, [ErrUnauthorized] for 401).
package llm

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/language_model_mock.go -package=mock

// LanguageModel sends a conversation to a chat model and returns its reply.
type LanguageModel interface {
	// Invoke sends messages in order and returns the first completion.
	// overrides replace the configured request parameters for this call only
	// (e.g. {"temperature": 0.9}). A nil map sends the configured parameters.
	Invoke(ctx context.Context, messages []ChatMessage, overrides map[string]any) (ChatResponse, error)
}
