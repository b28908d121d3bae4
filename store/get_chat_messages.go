package store

import (
	"fmt"
)

// GetChatMessages returns a chat's messages in conversational order:
// ascending creation timestamp, with insertion order (rowid) breaking
// ties between equal timestamps.
func (s *Store) GetChatMessages(chatID string) ([]*Message, error) {
	rows, err := s.db.Query(`
		SELECT id, chat_id, role, content, creation_timestamp
		FROM messages
		WHERE chat_id = ?
		ORDER BY creation_timestamp ASC, rowid ASC`, chatID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}
