package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/typedconf/internal/llm"
	"github.com/MKhiriev/typedconf/internal/logger"
)

type conversation struct {
	id      string
	model   llm.LanguageModel
	history []llm.ChatMessage

	logger *logger.Logger
}

// NewConversation starts a conversation with model. A non-blank
// systemPrompt becomes the first message of the history.
func NewConversation(model llm.LanguageModel, systemPrompt string, log *logger.Logger) (ChatService, error) {
	if model == nil {
		return nil, ErrNilModel
	}

	id := uuid.NewString()
	c := &conversation{
		id:     id,
		model:  model,
		logger: logger.OrNop(log).GetChildLogger("conversation"),
	}
	if strings.TrimSpace(systemPrompt) != "" {
		c.history = append(c.history, llm.SystemMessage(systemPrompt))
	}

	c.logger.Debug().Str("conversation_id", id).Msg("conversation started")
	return c, nil
}

func (c *conversation) ID() string {
	return c.id
}

func (c *conversation) Send(ctx context.Context, content string, overrides map[string]any) (llm.ChatResponse, error) {
	if strings.TrimSpace(content) == "" {
		return llm.ChatResponse{}, ErrEmptyMessage
	}

	messages := make([]llm.ChatMessage, len(c.history), len(c.history)+1)
	copy(messages, c.history)
	messages = append(messages, llm.UserMessage(content))

	resp, err := c.model.Invoke(ctx, messages, overrides)
	if err != nil {
		c.logger.Error().Err(err).Str("conversation_id", c.id).Msg("model invocation failed")
		return llm.ChatResponse{}, fmt.Errorf("send message: %w", err)
	}

	c.history = append(messages, llm.ChatMessage{
		Role:     llm.RoleAssistant,
		Content:  resp.Content,
		Metadata: resp.Metadata,
	})

	event := c.logger.Info().
		Str("conversation_id", c.id).
		Str("model", resp.Model).
		Dur("response_time", resp.ResponseTime)
	if resp.Usage != nil {
		event = event.Int("total_tokens", resp.Usage.TotalTokens)
	}
	event.Msg("model replied")

	return resp, nil
}

func (c *conversation) History() []llm.ChatMessage {
	out := make([]llm.ChatMessage, len(c.history))
	copy(out, c.history)
	return out
}
