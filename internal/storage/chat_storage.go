package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
)

func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	var profile models.UserProfile
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM profiles WHERE user_id = ?", userID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile, ErrNotFound
		}
		return profile, err
	}
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return profile, fmt.Errorf("decode profile %s: %w", userID, err)
	}
	return profile, nil
}

func (s *SQLiteStore) PutProfile(ctx context.Context, userID string, profile models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles(user_id, data) VALUES(?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data`, userID, string(data))
	return err
}

func (s *SQLiteStore) GetChats(ctx context.Context, userID string) ([]models.ChatSession, error) {
	chats := []models.ChatSession{}
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM chats WHERE user_id = ?", userID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return chats, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &chats); err != nil {
		return nil, fmt.Errorf("decode chats %s: %w", userID, err)
	}
	if chats == nil {
		chats = []models.ChatSession{}
	}
	return chats, nil
}

func (s *SQLiteStore) PutChats(ctx context.Context, userID string, chats []models.ChatSession) error {
	if chats == nil {
		chats = []models.ChatSession{}
	}
	data, err := json.Marshal(chats)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chats(user_id, data) VALUES(?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data`, userID, string(data))
	return err
}
