package handler

import (
	"context"
	"time"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/apperr"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/auth"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/chat"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/llm"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/middleware"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (models.UserProfile, error)
	PutProfile(ctx context.Context, userID string, profile models.UserProfile) error
}

type Handler struct {
	auth       *auth.Service
	chats      *chat.Manager
	profiles   ProfileStore
	personas   chat.PersonaResolver
	generator  llm.Generator
	llmTimeout time.Duration
	logger     *zap.Logger
}

type Options struct {
	Auth       *auth.Service
	Chats      *chat.Manager
	Profiles   ProfileStore
	Personas   chat.PersonaResolver
	Generator  llm.Generator
	LLMTimeout time.Duration
	Logger     *zap.Logger
}

func New(opts Options) *Handler {
	if opts.LLMTimeout <= 0 {
		opts.LLMTimeout = 60 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Handler{
		auth:       opts.Auth,
		chats:      opts.Chats,
		profiles:   opts.Profiles,
		personas:   opts.Personas,
		generator:  opts.Generator,
		llmTimeout: opts.LLMTimeout,
		logger:     opts.Logger,
	}
}

type SuccessResponse struct {
	Message string `json:"message" example:"Chat saved."`
}

type ErrorResponse struct {
	Message string `json:"message" example:"Chat not found."`
}

// respondError writes the status and client message for err. Internal causes
// are only logged.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.InternalFailure || kind == apperr.UpstreamFailure {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("user_id", c.GetString(middleware.UserIDKey)),
			zap.String("kind", kind.String()),
			zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(kind.HTTPStatus(), ErrorResponse{Message: apperr.Message(err)})
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	h.respondError(c, apperr.New(apperr.InvalidInput, message))
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}
