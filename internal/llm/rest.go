package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type generateRequest struct {
	Contents         []models.Turn     `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []models.Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// RESTClient calls the generateContent REST endpoint directly.
type RESTClient struct {
	client *resty.Client
	model  string
	apiKey string
	logger *zap.Logger
}

func NewRESTClient(apiKey, model, baseURL string, timeout time.Duration, logger *zap.Logger) (*RESTClient, error) {
	if apiKey == "" {
		return nil, errors.New("NewRESTClient(): GEMINI_API_KEY is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &RESTClient{client: client, model: model, apiKey: apiKey, logger: logger}, nil
}

func (c *RESTClient) Generate(ctx context.Context, req Request) (string, error) {
	body := generateRequest{Contents: req.Contents}
	if req.ResponseMIMEType != "" || req.ResponseSchema != nil {
		body.GenerationConfig = &generationConfig{
			ResponseMimeType: req.ResponseMIMEType,
			ResponseSchema:   req.ResponseSchema,
		}
	}

	var result generateResponse
	var apiErr errorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(c.model)))
	if err != nil {
		c.logger.Error("Gemini request failed", zap.String("model", c.model), zap.Error(err))
		return "", upstreamError("", err)
	}
	if resp.IsError() {
		c.logger.Error("Gemini returned an error",
			zap.Int("status", resp.StatusCode()),
			zap.String("message", apiErr.Error.Message))
		msg := ""
		if apiErr.Error.Message != "" {
			msg = "API Error: " + apiErr.Error.Message
		}
		return "", upstreamError(msg, fmt.Errorf("generateContent: status %d", resp.StatusCode()))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 ||
		result.Candidates[0].Content.Parts[0].Text == "" {
		return "", upstreamError(ErrEmptyResponse.Error(), ErrEmptyResponse)
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
