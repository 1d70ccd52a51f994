package models

// Conversation turn roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single turn in a conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse represents the response from the chat endpoint. History holds
// the user and assistant turns only; system turns stay server-side.
type ChatResponse struct {
	BaseResponse
	Reply     string        `json:"reply"`
	SessionID string        `json:"session_id"`
	History   []ChatMessage `json:"history"`
}
