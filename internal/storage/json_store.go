package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
)

// document is the whole persisted state of the json driver.
type document struct {
	Users    []models.User                   `json:"users"`
	Profiles map[string]models.UserProfile   `json:"profiles"`
	Chats    map[string][]models.ChatSession `json:"chats"`
}

// JSONStore keeps everything in one JSON file that is read and rewritten in
// full on every call. The mutex only prevents torn writes inside one process;
// two requests doing read-modify-write through the Store can still lose an update.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("NewJSONStore(): create directory: %w", err)
			}
		}
		if err := s.write(&document{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("NewJSONStore(): stat %s: %w", path, err)
	}
	return s, nil
}

func (s *JSONStore) read() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	doc := &document{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.path, err)
		}
	}
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Profiles == nil {
		doc.Profiles = map[string]models.UserProfile{}
	}
	if doc.Chats == nil {
		doc.Chats = map[string][]models.ChatSession{}
	}
	return doc, nil
}

func (s *JSONStore) write(doc *document) error {
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Profiles == nil {
		doc.Profiles = map[string]models.UserProfile{}
	}
	if doc.Chats == nil {
		doc.Chats = map[string][]models.ChatSession{}
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return os.Rename(tmp.Name(), s.path)
}

// update runs fn on a fresh copy of the document and writes it back.
func (s *JSONStore) update(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.write(doc)
}

func (s *JSONStore) view(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *JSONStore) CreateUser(_ context.Context, user models.User) error {
	return s.update(func(doc *document) error {
		for _, u := range doc.Users {
			if u.Email == user.Email {
				return ErrEmailExists
			}
		}
		doc.Users = append(doc.Users, user)
		doc.Profiles[user.ID] = emptyProfile(user)
		doc.Chats[user.ID] = []models.ChatSession{}
		return nil
	})
}

func (s *JSONStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	var found models.User
	err := s.view(func(doc *document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				found = u
				return nil
			}
		}
		return ErrNotFound
	})
	return found, err
}

func (s *JSONStore) GetProfile(_ context.Context, userID string) (models.UserProfile, error) {
	var profile models.UserProfile
	err := s.view(func(doc *document) error {
		p, ok := doc.Profiles[userID]
		if !ok {
			return ErrNotFound
		}
		profile = p
		return nil
	})
	return profile, err
}

func (s *JSONStore) PutProfile(_ context.Context, userID string, profile models.UserProfile) error {
	return s.update(func(doc *document) error {
		doc.Profiles[userID] = profile
		return nil
	})
}

func (s *JSONStore) GetChats(_ context.Context, userID string) ([]models.ChatSession, error) {
	var chats []models.ChatSession
	err := s.view(func(doc *document) error {
		chats = doc.Chats[userID]
		return nil
	})
	if chats == nil {
		chats = []models.ChatSession{}
	}
	return chats, err
}

func (s *JSONStore) PutChats(_ context.Context, userID string, chats []models.ChatSession) error {
	if chats == nil {
		chats = []models.ChatSession{}
	}
	return s.update(func(doc *document) error {
		doc.Chats[userID] = chats
		return nil
	})
}

func (s *JSONStore) Close() error { return nil }
