package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/winimoid/organext/internal/model"
)

// CreateConversation inserts a new chat conversation. Generates a UUID if
// ID is empty and returns the stored conversation.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conv model.Conversation) (model.Conversation, error) {
	if strings.TrimSpace(conv.Title) == "" {
		conv.Title = "New conversation"
	}
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, title, model, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		conv.ID, conv.Title, conv.Model, conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("creating conversation: %w", err)
	}
	return conv, nil
}

// GetConversations retrieves all conversations, newest first.
func (s *SQLiteStore) GetConversations(ctx context.Context) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := s.db.SelectContext(ctx, &convs,
		"SELECT * FROM conversations ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying conversations: %w", err)
	}
	return convs, nil
}

// DeleteConversation removes a conversation by ID. Cascades to messages.
func (s *SQLiteStore) DeleteConversation(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting conversation %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("conversation %s not found", id)
	}
	return nil
}

// AddChatMessage appends a message to a conversation and bumps the
// conversation's updated_at.
func (s *SQLiteStore) AddChatMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, sender, text, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.ConversationID, msg.Sender, msg.Text, msg.CreatedAt,
	)
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("adding chat message: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE conversations SET updated_at = ? WHERE id = ?",
		msg.CreatedAt, msg.ConversationID,
	)
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("touching conversation %s: %w", msg.ConversationID, err)
	}

	return msg, nil
}

// GetChatMessages retrieves all messages for a conversation in
// chronological order.
func (s *SQLiteStore) GetChatMessages(ctx context.Context, conversationID string) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := s.db.SelectContext(ctx, &msgs,
		"SELECT * FROM messages WHERE conversation_id = ? ORDER BY created_at ASC",
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages for conversation %s: %w", conversationID, err)
	}
	return msgs, nil
}
