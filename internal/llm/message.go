package llm

import "time"

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of a conversation.
type ChatMessage struct {
	Role     Role
	Content  string
	Metadata map[string]any
}

// SystemMessage returns a system ChatMessage.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage returns a user ChatMessage.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// AssistantMessage returns an assistant ChatMessage.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// ChatResponse is the normalised reply of a model call.
type ChatResponse struct {
	Content      string
	Model        string
	Usage        *Usage
	ResponseTime time.Duration
	FinishReason string
	Metadata     map[string]any
}

// Usage holds token accounting reported by the provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
