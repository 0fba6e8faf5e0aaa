package handler

import (
	"net/http"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// /auth/register and /auth/login request body
type CredentialsRequest struct {
	Email    string `json:"email" example:"student@example.com"`
	Password string `json:"password" example:"password123"`
}

type UserResponse struct {
	ID    string `json:"id" example:"5f0c6d1e-8a4b-4c57-9a43-2f1e0b7a9c11"`
	Email string `json:"email" example:"student@example.com"`
}

type AuthResponse struct {
	Message string       `json:"message" example:"Login successful!"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

func authResponse(message string, s auth.Session) AuthResponse {
	return AuthResponse{
		Message: message,
		User:    UserResponse{ID: s.User.ID, Email: s.User.Email},
		Token:   s.Token,
	}
}

// Register godoc
// @Summary      Register
// @Description  Creates an account with an empty profile and chat list, and returns a token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.CredentialsRequest true "Email and password"
// @Success      201 {object} handler.AuthResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      409 {object} handler.ErrorResponse "Email already registered"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Email and password are required.")
		return
	}

	session, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse("User registered!", session))
}

// Login godoc
// @Summary      Login
// @Description  Verifies credentials and issues a 24h bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.CredentialsRequest true "Email and password"
// @Success      200 {object} handler.AuthResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse "Invalid credentials"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request.")
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse("Login successful!", session))
}
