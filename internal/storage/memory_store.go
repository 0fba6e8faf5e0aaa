package storage

import (
	"context"
	"sync"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
)

// MemoryStore is a process-local Store. Values are copied in and out so callers
// never share slices with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	profiles map[string]models.UserProfile
	chats    map[string][]models.ChatSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]models.User),
		profiles: make(map[string]models.UserProfile),
		chats:    make(map[string][]models.ChatSession),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return ErrEmailExists
	}
	s.users[user.Email] = user
	s.profiles[user.ID] = emptyProfile(user)
	s.chats[user.ID] = []models.ChatSession{}
	return nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) GetProfile(_ context.Context, userID string) (models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return models.UserProfile{}, ErrNotFound
	}
	return profile, nil
}

func (s *MemoryStore) PutProfile(_ context.Context, userID string, profile models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[userID] = profile
	return nil
}

func (s *MemoryStore) GetChats(_ context.Context, userID string) ([]models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyChats(s.chats[userID]), nil
}

func (s *MemoryStore) PutChats(_ context.Context, userID string, chats []models.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chats[userID] = copyChats(chats)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
