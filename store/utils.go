package store

import (
	"database/sql"
	"fmt"
)

func scanChat(row interface{ Scan(...interface{}) error }) (*Chat, error) {
	chat := &Chat{}
	if err := row.Scan(&chat.ID, &chat.Title, &chat.ModelID,
		&chat.CreationTimestamp, &chat.UpdateTimestamp); err != nil {
		return nil, err
	}
	return chat, nil
}

// scanChats helps avoid duplicate chat scanning code.
func scanChats(rows *sql.Rows) ([]*Chat, error) {
	var chats []*Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning chat row: %w", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat rows: %w", err)
	}
	return chats, nil
}

func scanMessages(rows *sql.Rows) ([]*Message, error) {
	var messages []*Message
	for rows.Next() {
		message := &Message{}
		if err := rows.Scan(&message.ID, &message.ChatID, &message.Role,
			&message.Content, &message.CreationTimestamp); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}
	return messages, nil
}
