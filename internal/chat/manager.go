// Package chat owns the lifecycle of a user's chat sessions: persona-seeded
// creation, lookup, whole-session save, rename and delete.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/apperr"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the slice of storage.Store the manager reads and writes.
type Store interface {
	GetProfile(ctx context.Context, userID string) (models.UserProfile, error)
	GetChats(ctx context.Context, userID string) ([]models.ChatSession, error)
	PutChats(ctx context.Context, userID string, chats []models.ChatSession) error
}

// PersonaResolver turns a profile into the opening system prompt.
type PersonaResolver interface {
	Resolve(profile models.UserProfile) string
}

type Manager struct {
	store    Store
	personas PersonaResolver
	logger   *zap.Logger
	newID    func() string
}

func NewManager(store Store, personas PersonaResolver, logger *zap.Logger) *Manager {
	return &Manager{
		store:    store,
		personas: personas,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Greeting is the model turn that opens every new chat.
func Greeting(name string) string {
	return fmt.Sprintf("Hello %s! I understand your profile. How can I help you today?", name)
}

// NewSession builds a persona-seeded session: the persona prompt as the user
// turn followed by the model's greeting.
func NewSession(id, persona string, profile models.UserProfile) models.ChatSession {
	return models.ChatSession{
		ID:    id,
		Title: models.DefaultChatTitle,
		History: []models.Turn{
			models.NewTurn(models.RoleUser, persona),
			models.NewTurn(models.RoleModel, Greeting(profile.Name)),
		},
	}
}

func (m *Manager) List(ctx context.Context, userID string) ([]models.ChatSummary, error) {
	chats, err := m.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.ChatSummary, 0, len(chats))
	for _, c := range chats {
		summaries = append(summaries, c.Summary())
	}
	return summaries, nil
}

// Create starts a chat for the user's stored profile.
func (m *Manager) Create(ctx context.Context, userID string) (models.ChatSession, error) {
	profile, err := m.store.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.ChatSession{}, apperr.New(apperr.NotFound, "Profile not found.")
		}
		return models.ChatSession{}, apperr.Wrap(apperr.InternalFailure, "Failed to load profile.", err)
	}
	if profile.ClassGroup == "" {
		return models.ChatSession{}, apperr.New(apperr.InvalidInput, "Profile is incomplete: classGroup is required.")
	}

	chats, err := m.load(ctx, userID)
	if err != nil {
		return models.ChatSession{}, err
	}

	session := NewSession(m.newID(), m.personas.Resolve(profile), profile)
	chats = append(chats, session)
	if err := m.persist(ctx, userID, chats); err != nil {
		return models.ChatSession{}, err
	}
	m.logger.Info("Created chat", zap.String("user_id", userID), zap.String("chat_id", session.ID))
	return session, nil
}

func (m *Manager) Get(ctx context.Context, userID, chatID string) (models.ChatSession, error) {
	chats, err := m.load(ctx, userID)
	if err != nil {
		return models.ChatSession{}, err
	}
	i := indexOf(chats, chatID)
	if i < 0 {
		return models.ChatSession{}, errChatNotFound
	}
	return chats[i], nil
}

// Save replaces the session with the same ID or appends it when the ID is new.
// It reports whether the session was appended.
func (m *Manager) Save(ctx context.Context, userID string, session models.ChatSession) (bool, error) {
	if session.ID == "" {
		return false, apperr.New(apperr.InvalidInput, "Invalid chat data.")
	}
	chats, err := m.load(ctx, userID)
	if err != nil {
		return false, err
	}

	created := false
	if i := indexOf(chats, session.ID); i >= 0 {
		chats[i] = session
	} else {
		chats = append(chats, session)
		created = true
	}
	if err := m.persist(ctx, userID, chats); err != nil {
		return false, err
	}
	return created, nil
}

// Rename changes only the title of the session.
func (m *Manager) Rename(ctx context.Context, userID, chatID, title string) error {
	if strings.TrimSpace(title) == "" {
		return apperr.New(apperr.InvalidInput, "New title is required.")
	}
	chats, err := m.load(ctx, userID)
	if err != nil {
		return err
	}
	i := indexOf(chats, chatID)
	if i < 0 {
		return errChatNotFound
	}
	chats[i].Title = title
	return m.persist(ctx, userID, chats)
}

func (m *Manager) Delete(ctx context.Context, userID, chatID string) error {
	chats, err := m.load(ctx, userID)
	if err != nil {
		return err
	}
	i := indexOf(chats, chatID)
	if i < 0 {
		return errChatNotFound
	}
	chats = append(chats[:i:i], chats[i+1:]...)
	if err := m.persist(ctx, userID, chats); err != nil {
		return err
	}
	m.logger.Info("Deleted chat", zap.String("user_id", userID), zap.String("chat_id", chatID))
	return nil
}

var errChatNotFound = apperr.New(apperr.NotFound, "Chat not found.")

func indexOf(chats []models.ChatSession, id string) int {
	for i, c := range chats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) load(ctx context.Context, userID string) ([]models.ChatSession, error) {
	chats, err := m.store.GetChats(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalFailure, "Failed to load chats.", err)
	}
	return chats, nil
}

func (m *Manager) persist(ctx context.Context, userID string, chats []models.ChatSession) error {
	if err := m.store.PutChats(ctx, userID, chats); err != nil {
		return apperr.Wrap(apperr.InternalFailure, "Failed to save chats.", err)
	}
	return nil
}
