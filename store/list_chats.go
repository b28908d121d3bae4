package store

import (
	"fmt"
)

// ListChats returns all chats, most recently updated first.
func (s *Store) ListChats() ([]*Chat, error) {
	rows, err := s.db.Query(`
		SELECT id, title, model_id, creation_timestamp, update_timestamp
		FROM chats
		ORDER BY update_timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying chats: %w", err)
	}
	defer rows.Close()

	return scanChats(rows)
}
