package llm

import (
	"context"
	"errors"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/apperr"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
)

const (
	DefaultModel   = "gemini-2.0-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
)

var ErrEmptyResponse = errors.New("Received an empty response from the API.")

// Generator produces the next model text for a conversation.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is one generateContent call. ResponseMIMEType and ResponseSchema are
// optional output constraints.
type Request struct {
	Contents         []models.Turn
	ResponseMIMEType string
	ResponseSchema   *Schema
}

// Schema is the subset of the OpenAPI schema object accepted as responseSchema.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// upstreamError wraps a provider failure; message is the provider's own text if it gave one.
func upstreamError(message string, err error) error {
	if message == "" {
		message = "An internal server error occurred."
	}
	return apperr.Wrap(apperr.UpstreamFailure, message, err)
}
