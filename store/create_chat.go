package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateChat creates a new chat bound to the given model and writes it
// to the database.
func (s *Store) CreateChat(modelID string) (*Chat, error) {
	now := time.Now().UnixMicro()
	chat := &Chat{
		ID:                uuid.New().String(),
		Title:             DefaultTitle,
		ModelID:           modelID,
		CreationTimestamp: now,
		UpdateTimestamp:   now,
	}

	_, err := s.db.Exec(`
		INSERT INTO chats (id, title, model_id, creation_timestamp, update_timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		chat.ID, chat.Title, chat.ModelID, chat.CreationTimestamp, chat.UpdateTimestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting chat: %w", err)
	}

	return chat, nil
}
