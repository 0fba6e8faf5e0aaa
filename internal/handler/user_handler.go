package handler

import (
	"errors"
	"net/http"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/apperr"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/middleware"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProfile godoc
// @Summary      Get profile
// @Description  Returns the caller's stored profile.
// @Tags         Profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.UserProfile
// @Failure      401 "Missing token"
// @Failure      403 "Invalid token"
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.respondError(c, apperr.New(apperr.NotFound, "Profile not found."))
			return
		}
		h.respondError(c, apperr.Wrap(apperr.InternalFailure, "Failed to load profile.", err))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Replaces the caller's profile. The email always comes from the token.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.UserProfile true "Profile"
// @Success      200 {object} handler.SuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 "Missing token"
// @Failure      403 "Invalid token"
// @Router       /api/profile [post]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.badRequest(c, "Invalid profile data.")
		return
	}
	profile.Email = c.GetString(middleware.EmailKey)

	if err := h.profiles.PutProfile(c.Request.Context(), userID(c), profile); err != nil {
		h.respondError(c, apperr.Wrap(apperr.InternalFailure, "Failed to update profile.", err))
		return
	}
	h.logger.Info("Updated profile", zap.String("email", profile.Email))
	c.JSON(http.StatusOK, SuccessResponse{Message: "Profile updated successfully."})
}
