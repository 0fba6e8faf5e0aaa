package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one key per user record:
//
//	<prefix>user:<email>   user JSON
//	<prefix>profile:<id>   profile JSON
//	<prefix>chats:<id>     chat collection JSON
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) userKey(email string) string     { return s.prefix + "user:" + email }
func (s *RedisStore) profileKey(userID string) string { return s.prefix + "profile:" + userID }
func (s *RedisStore) chatsKey(userID string) string   { return s.prefix + "chats:" + userID }

func (s *RedisStore) CreateUser(ctx context.Context, user models.User) error {
	val, err := json.Marshal(user)
	if err != nil {
		return err
	}
	profile, err := json.Marshal(emptyProfile(user))
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, s.userKey(user.Email), val, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrEmailExists
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.profileKey(user.ID), profile, 0)
		pipe.Set(ctx, s.chatsKey(user.ID), "[]", 0)
		return nil
	})
	if err != nil {
		// leave no half-registered account behind
		s.client.Del(ctx, s.userKey(user.Email))
		return err
	}
	return nil
}

func (s *RedisStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.getJSON(ctx, s.userKey(email), &user)
	return user, err
}

func (s *RedisStore) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	var profile models.UserProfile
	err := s.getJSON(ctx, s.profileKey(userID), &profile)
	return profile, err
}

func (s *RedisStore) PutProfile(ctx context.Context, userID string, profile models.UserProfile) error {
	return s.setJSON(ctx, s.profileKey(userID), profile)
}

func (s *RedisStore) GetChats(ctx context.Context, userID string) ([]models.ChatSession, error) {
	chats := []models.ChatSession{}
	err := s.getJSON(ctx, s.chatsKey(userID), &chats)
	if errors.Is(err, ErrNotFound) {
		return []models.ChatSession{}, nil
	}
	if err != nil {
		return nil, err
	}
	if chats == nil {
		chats = []models.ChatSession{}
	}
	return chats, nil
}

func (s *RedisStore) PutChats(ctx context.Context, userID string, chats []models.ChatSession) error {
	if chats == nil {
		chats = []models.ChatSession{}
	}
	return s.setJSON(ctx, s.chatsKey(userID), chats)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) getJSON(ctx context.Context, key string, dst any) error {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v any) error {
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, val, 0).Err()
}
