package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/apperr"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserStore is the part of storage.Store the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// Session is the result of a successful register or login.
type Session struct {
	User  models.User
	Token string
}

type Service struct {
	users  UserStore
	tokens *TokenIssuer
	logger *zap.Logger
}

func NewService(users UserStore, tokens *TokenIssuer, logger *zap.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

func (s *Service) Register(ctx context.Context, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, apperr.New(apperr.InvalidInput, "Email and password are required.")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return Session{}, apperr.Wrap(apperr.InternalFailure, "Internal server error.", err)
	}
	user := models.User{ID: uuid.NewString(), Email: email, PasswordHash: hashed}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			return Session{}, apperr.New(apperr.Conflict, "User with this email already exists.")
		}
		return Session{}, apperr.Wrap(apperr.InternalFailure, "Internal server error.", err)
	}
	s.logger.Info("Registered new user", zap.String("email", user.Email), zap.String("user_id", user.ID))

	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, apperr.New(apperr.Unauthorized, "Invalid credentials.")
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Session{}, apperr.New(apperr.Unauthorized, "Invalid credentials.")
		}
		return Session{}, apperr.Wrap(apperr.InternalFailure, "Internal server error.", err)
	}
	if !CheckPassword(user.PasswordHash, password) {
		return Session{}, apperr.New(apperr.Unauthorized, "Invalid credentials.")
	}
	s.logger.Info("Logged in user", zap.String("email", user.Email))

	return s.issue(user)
}

func (s *Service) issue(user models.User) (Session, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return Session{}, apperr.Wrap(apperr.InternalFailure, "Failed to generate token.", err)
	}
	return Session{User: user, Token: token}, nil
}
