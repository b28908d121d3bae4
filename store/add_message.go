package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AddMessage appends a message to a chat and returns the durable record.
// The owning chat's update timestamp is bumped in the same transaction so
// the chat list orders by most recent activity.
func (s *Store) AddMessage(chatID, role, content string) (*Message, error) {
	now := time.Now().UnixMicro()
	message := &Message{
		ID:                uuid.New().String(),
		ChatID:            chatID,
		Role:              role,
		Content:           content,
		CreationTimestamp: now,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE chats SET update_timestamp = ? WHERE id = ?`, now, chatID)
	if err != nil {
		return nil, fmt.Errorf("bumping chat update timestamp: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("chat not found")
	}

	_, err = tx.Exec(`
		INSERT INTO messages (id, chat_id, role, content, creation_timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		message.ID, message.ChatID, message.Role, message.Content, message.CreationTimestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return message, nil
}
