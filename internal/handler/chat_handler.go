package handler

import (
	"net/http"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type SaveChatRequest struct {
	Chat *models.ChatSession `json:"chat"`
}

type RenameChatRequest struct {
	Title string `json:"title" example:"Thermodynamics revision"`
}

// ListChats godoc
// @Summary      List chats
// @Description  Returns the id and title of every chat the caller owns, in creation order.
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.ChatSummary
// @Failure      401 "Missing token"
// @Failure      403 "Invalid token"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/chats [get]
func (h *Handler) ListChats(c *gin.Context) {
	chats, err := h.chats.List(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

// NewChat godoc
// @Summary      Start a chat
// @Description  Creates a chat seeded with the persona prompt for the caller's profile and a greeting.
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} models.ChatSession
// @Failure      400 {object} handler.ErrorResponse "Profile incomplete"
// @Failure      404 {object} handler.ErrorResponse "Profile not found"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/chats/new [post]
func (h *Handler) NewChat(c *gin.Context) {
	session, err := h.chats.Create(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetChat godoc
// @Summary      Get a chat
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        chatId path string true "Chat ID"
// @Success      200 {object} models.ChatSession
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/chats/{chatId} [get]
func (h *Handler) GetChat(c *gin.Context) {
	session, err := h.chats.Get(c.Request.Context(), userID(c), c.Param("chatId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SaveChat godoc
// @Summary      Save a chat
// @Description  Replaces the chat with the same id, or appends it when the id is new.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.SaveChatRequest true "Whole chat session"
// @Success      200 {object} handler.SuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/chats/save [post]
func (h *Handler) SaveChat(c *gin.Context) {
	var req SaveChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Chat == nil {
		h.badRequest(c, "Invalid chat data.")
		return
	}

	if _, err := h.chats.Save(c.Request.Context(), userID(c), *req.Chat); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Chat saved."})
}

// RenameChat godoc
// @Summary      Rename a chat
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chatId path string true "Chat ID"
// @Param        request body handler.RenameChatRequest true "New title"
// @Success      200 {object} handler.SuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/chats/{chatId}/rename [put]
func (h *Handler) RenameChat(c *gin.Context) {
	var req RenameChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "New title is required.")
		return
	}

	if err := h.chats.Rename(c.Request.Context(), userID(c), c.Param("chatId"), req.Title); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Chat renamed successfully."})
}

// DeleteChat godoc
// @Summary      Delete a chat
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        chatId path string true "Chat ID"
// @Success      200 {object} handler.SuccessResponse
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/chats/{chatId} [delete]
func (h *Handler) DeleteChat(c *gin.Context) {
	if err := h.chats.Delete(c.Request.Context(), userID(c), c.Param("chatId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Chat deleted successfully."})
}
