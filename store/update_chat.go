package store

import (
	"fmt"
	"time"
)

// UpdateChatTitle sets the chat's title and bumps its update timestamp.
func (s *Store) UpdateChatTitle(chatID, title string) error {
	result, err := s.db.Exec(`
		UPDATE chats SET title = ?, update_timestamp = ? WHERE id = ?`,
		title, time.Now().UnixMicro(), chatID,
	)
	if err != nil {
		return fmt.Errorf("updating chat title: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("chat not found")
	}
	return nil
}
