package store

import "fmt"

// DeleteChat removes a chat and all of its messages in one transaction.
// Deleting a chat that does not exist is a no-op, so an interrupted
// delete can be retried safely.
func (s *Store) DeleteChat(chatID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM messages WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("deleting messages: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM chats WHERE id = ?`, chatID); err != nil {
		return fmt.Errorf("deleting chat: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
