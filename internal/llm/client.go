/**
* Name:        client.go
* Description: Gemini generateContent through the google.golang.org/genai SDK
 */
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type GenAIClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGenAIClient(ctx context.Context, apiKey, model, baseURL string, logger *zap.Logger) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("NewGenAIClient(): GEMINI_API_KEY is required")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("NewGenAIClient(): failed to create GenAI client: %w", err)
	}
	return &GenAIClient{client: client, model: model, logger: logger}, nil
}

func (c *GenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	contents := toGenAIContents(req.Contents)
	var config *genai.GenerateContentConfig
	if req.ResponseMIMEType != "" || req.ResponseSchema != nil {
		config = &genai.GenerateContentConfig{
			ResponseMIMEType: req.ResponseMIMEType,
			ResponseSchema:   toGenAISchema(req.ResponseSchema),
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		c.logger.Error("Gemini generateContent failed", zap.String("model", c.model), zap.Error(err))
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", upstreamError("API Error: "+apiErr.Message, err)
		}
		return "", upstreamError(err.Error(), err)
	}

	text := firstText(resp)
	if text == "" {
		return "", upstreamError(ErrEmptyResponse.Error(), ErrEmptyResponse)
	}
	return text, nil
}

// firstText returns the first part of the first candidate, the same field the
// web client has always displayed.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return ""
	}
	return content.Parts[0].Text
}

func toGenAIContents(turns []models.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		parts := make([]*genai.Part, 0, len(t.Parts))
		for _, p := range t.Parts {
			parts = append(parts, genai.NewPartFromText(p.Text))
		}
		contents = append(contents, &genai.Content{Role: t.Role, Parts: parts})
	}
	return contents
}

func toGenAISchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:     genai.Type(s.Type),
		Items:    toGenAISchema(s.Items),
		Required: s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
	}
	return out
}
