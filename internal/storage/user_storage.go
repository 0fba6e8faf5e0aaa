package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"

	"modernc.org/sqlite"
)

// SQLITE_CONSTRAINT_UNIQUE
const sqliteConstraintUnique = 2067

func (s *SQLiteStore) CreateUser(ctx context.Context, user models.User) error {
	profile, err := json.Marshal(emptyProfile(user))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "INSERT INTO users(id, email, password_hash) VALUES(?, ?, ?)",
		user.ID, user.Email, user.PasswordHash)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteConstraintUnique {
			return ErrEmailExists
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO profiles(user_id, data) VALUES(?, ?)", user.ID, string(profile)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO chats(user_id, data) VALUES(?, ?)", user.ID, "[]"); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, "SELECT id, email, password_hash FROM users WHERE email = ?", email)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user, ErrNotFound
		}
		return user, err
	}
	return user, nil
}
