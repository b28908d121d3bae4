package store

import (
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
)

// GetChat retrieves a single chat by id.
func (s *Store) GetChat(chatID string) (*Chat, error) {
	row := s.db.QueryRow(`
		SELECT id, title, model_id, creation_timestamp, update_timestamp
		FROM chats
		WHERE id = ?`, chatID)

	chat, err := scanChat(row)
	if err == sql.ErrNoRows {
		return nil, errors.New("chat does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("querying chat: %w", err)
	}
	return chat, nil
}
