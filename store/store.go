package store

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Store implements a SQLite store for chats and their messages.
type Store struct {
	db *sql.DB
}

// New store backed by the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	// SQLite serializes writers; a single connection avoids
	// SQLITE_BUSY under concurrent chat creation.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS chats (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			model_id TEXT NOT NULL,
			creation_timestamp INTEGER NOT NULL,
			update_timestamp INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS chats_update_timestamp ON chats (update_timestamp);

		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			chat_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			creation_timestamp INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS messages_chat_id_creation_timestamp
			ON messages (chat_id, creation_timestamp);
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating tables")
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
