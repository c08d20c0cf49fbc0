// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"

	"github.com/MKhiriev/typedconf/internal/config"
	"github.com/MKhiriev/typedconf/internal/logger"
	"github.com/MKhiriev/typedconf/internal/utils"
)

// APIKeyEnv is consulted when the provider config carries no API key.
const APIKeyEnv = "OPENAI_API_KEY"

const completionsPath = "/chat/completions"

// OpenAIModel is a [LanguageModel] backed by an OpenAI-compatible
// chat-completions endpoint.
type OpenAIModel struct {
	client *utils.HTTPClient
	model  config.ModelConfig

	logger *logger.Logger
}

// NewOpenAIModel constructs an [OpenAIModel] for the given model parameters.
// The base URL is normalised from provider.BaseURL; the bearer token is
// provider.APIKey or, when empty, the OPENAI_API_KEY environment variable.
//
// Returns an error if the base URL is empty or cannot be parsed.
func NewOpenAIModel(model config.ModelConfig, provider config.ProviderConfig, log *logger.Logger) (*OpenAIModel, error) {
	apiKey := provider.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnv)
	}

	client, err := utils.NewAPIClient(provider.BaseURL, apiKey)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base url: %w", err)
	}

	return &OpenAIModel{
		client: client,
		model:  model,
		logger: logger.OrNop(log).GetChildLogger("llm"),
	}, nil
}

type wireMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	ID                string  `json:"id"`
	Model             string  `json:"model"`
	SystemFingerprint *string `json:"system_fingerprint"`
	Choices           []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
}

// Params returns the request parameters sent with every call: model,
// temperature, max_tokens and top_p.
func (m *OpenAIModel) Params() map[string]any {
	return map[string]any{
		"model":       m.model.ID,
		"temperature": m.model.Temperature,
		"max_tokens":  m.model.MaxTokens,
		"top_p":       m.model.TopP,
	}
}

// Invoke implements [LanguageModel]. It performs one POST to
// {base_url}/chat/completions without retries and returns the first choice.
func (m *OpenAIModel) Invoke(ctx context.Context, messages []ChatMessage, overrides map[string]any) (ChatResponse, error) {
	params := m.Params()
	if len(overrides) > 0 {
		if err := mergo.Merge(&params, overrides, mergo.WithOverride); err != nil {
			return ChatResponse{}, fmt.Errorf("merge request overrides: %w", err)
		}
	}

	wire := make([]wireMessage, 0, len(messages))
	for _, msg := range messages {
		wire = append(wire, wireMessage{Role: msg.Role, Content: msg.Content})
	}
	params["messages"] = wire

	start := time.Now()
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(params).
		Post(completionsPath)
	elapsed := time.Since(start)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("chat completion request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		m.logger.Warn().Int("status", resp.StatusCode()).Err(err).Msg("chat completion failed")
		return ChatResponse{}, err
	}

	var body completionResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return ChatResponse{}, fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(body.Choices) == 0 {
		return ChatResponse{}, ErrNoChoices
	}

	choice := body.Choices[0]
	out := ChatResponse{
		Model:        body.Model,
		Usage:        body.Usage,
		ResponseTime: elapsed,
		FinishReason: choice.FinishReason,
		Metadata:     map[string]any{},
	}
	if choice.Message.Content != nil {
		out.Content = *choice.Message.Content
	}
	if body.SystemFingerprint != nil {
		out.Metadata["system_fingerprint"] = *body.SystemFingerprint
	}
	if body.ID != "" {
		out.Metadata["id"] = body.ID
	}

	m.logger.Debug().
		Str("model", out.Model).
		Dur("response_time", elapsed).
		Str("finish_reason", out.FinishReason).
		Msg("chat completion received")

	return out, nil
}
