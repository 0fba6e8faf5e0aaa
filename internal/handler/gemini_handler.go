package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/apperr"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/llm"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/storage"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/tools"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GeminiRequest selects tool mode when Tool is set and chat mode otherwise.
type GeminiRequest struct {
	History []models.Turn       `json:"history,omitempty"`
	Tool    string              `json:"tool,omitempty" example:"quiz"`
	Topic   string              `json:"topic,omitempty" example:"Newton's laws"`
	Profile *models.UserProfile `json:"profile,omitempty"`
}

type GeminiResponse struct {
	Text string `json:"text"`
}

// Gemini godoc
// @Summary      Generate with Gemini
// @Description  Tool mode ({tool, topic, profile?}) runs the study planner or quiz for a topic.
// @Description  Chat mode ({history}) forwards the conversation as-is and returns the next model turn.
// @Tags         Gemini
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.GeminiRequest true "Tool or chat request"
// @Success      200 {object} handler.GeminiResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      502 {object} handler.ErrorResponse "Upstream model failure"
// @Router       /api/gemini [post]
func (h *Handler) Gemini(c *gin.Context) {
	var req GeminiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request.")
		return
	}

	var genReq llm.Request
	if req.Tool != "" {
		tool, ok := tools.GetTool(req.Tool)
		if !ok {
			h.badRequest(c, "Invalid tool specified.")
			return
		}
		if strings.TrimSpace(req.Topic) == "" {
			h.badRequest(c, "Topic is required.")
			return
		}
		profile, err := h.toolProfile(c, req.Profile)
		if err != nil {
			h.respondError(c, err)
			return
		}
		genReq = tool.Request(req.Topic, h.personas.Resolve(profile))
	} else {
		if req.History == nil {
			h.badRequest(c, "Chat history is required.")
			return
		}
		genReq = llm.Request{Contents: req.History}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.llmTimeout)
	defer cancel()

	text, err := h.generator.Generate(ctx, genReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperr.Wrap(apperr.UpstreamFailure, "The model did not respond in time.", err)
		}
		h.respondError(c, err)
		return
	}
	h.logger.Debug("Generated response",
		zap.String("user_id", userID(c)),
		zap.String("tool", req.Tool),
		zap.Int("turns", len(genReq.Contents)),
		zap.Int("chars", len(text)))
	c.JSON(http.StatusOK, GeminiResponse{Text: text})
}

// toolProfile prefers the profile sent with the request and falls back to
// the stored one.
func (h *Handler) toolProfile(c *gin.Context, sent *models.UserProfile) (models.UserProfile, error) {
	profile := models.UserProfile{}
	if sent != nil {
		profile = *sent
	} else {
		stored, err := h.profiles.GetProfile(c.Request.Context(), userID(c))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return profile, apperr.New(apperr.NotFound, "Profile not found.")
			}
			return profile, apperr.Wrap(apperr.InternalFailure, "Failed to load profile.", err)
		}
		profile = stored
	}
	if profile.ClassGroup == "" {
		return profile, apperr.New(apperr.InvalidInput, "Profile is incomplete: classGroup is required.")
	}
	return profile, nil
}
