// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the application services built on top of the
// configuration and the language model adapter.
package service

import (
	"context"

	"github.com/MKhiriev/typedconf/internal/llm"
)

// ChatService keeps the message history of one conversation and forwards it
// to a language model.
type ChatService interface {
	// ID returns the conversation identifier.
	ID() string

	// Send appends a user message, invokes the model with the whole history
	// and appends the reply. overrides are passed to the model for this call
	// only. On error the history is left unchanged.
	Send(ctx context.Context, content string, overrides map[string]any) (llm.ChatResponse, error)

	// History returns a copy of the messages exchanged so far, the system
	// prompt first.
	History() []llm.ChatMessage
}

// AppInfoService reports static information about the configured
// application.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) AppInfo
}
