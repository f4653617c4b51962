package model

import "time"

// Message sender constants.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Conversation is a stored AI chat thread.
type Conversation struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Model     string    `json:"model" db:"model"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ChatMessage is a single message within a stored conversation.
// Its lifecycle is bound to the parent conversation (CASCADE delete).
type ChatMessage struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	Sender         string    `json:"sender" db:"sender"`
	Text           string    `json:"text" db:"text"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
