package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps users in their own table and profiles and chat
// collections as one JSON blob per user, so writes for different users never
// overwrite each other.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("NewSQLiteStore(): failed to open database: %w", err)
	}
	// one writer; modernc sqlite serialises anyway and this avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("NewSQLiteStore(): failed to connect to database: %w", err)
	}

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
			"id" TEXT PRIMARY KEY,
			"email" TEXT NOT NULL UNIQUE,
			"password_hash" TEXT NOT NULL
	);`
	createProfilesTable := `
	CREATE TABLE IF NOT EXISTS profiles (
			"user_id" TEXT PRIMARY KEY,
			"data" TEXT NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
	);`
	createChatsTable := `
	CREATE TABLE IF NOT EXISTS chats (
			"user_id" TEXT PRIMARY KEY,
			"data" TEXT NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
	);`

	for name, stmt := range map[string]string{
		"users":    createUsersTable,
		"profiles": createProfilesTable,
		"chats":    createChatsTable,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("NewSQLiteStore(): failed to create %s table: %w", name, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
