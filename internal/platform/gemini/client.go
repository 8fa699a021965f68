// Package gemini implements llm.Completer on top of Google's GenAI SDK.
//
// The system message of a chat request becomes the system instruction;
// remaining messages are sent as contents in order. The first candidate's
// text parts are concatenated into the reply.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/llm"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/redact"
	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client sends chat requests to a Gemini model.
type Client struct {
	models contentGenerator
	model  string
	logger *slog.Logger
}

var _ llm.Completer = (*Client)(nil)

// NewClient creates a GenAI client for the Gemini API backend.
func NewClient(ctx context.Context, settings config.ProviderSettings, log *slog.Logger) (*Client, error) {
	if settings.APIToken == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", llm.ErrInvalidConfig)
	}
	if settings.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", llm.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  settings.APIToken,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", llm.ErrInvalidConfig, err)
	}

	return newClient(client.Models, settings.Model, log), nil
}

func newClient(models contentGenerator, model string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		models: models,
		model:  model,
		logger: log.With("component", "gemini_client"),
	}
}

// Complete sends req and returns the first candidate's text.
func (c *Client) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	model := req.Model
	if model == "" {
		model = c.model
	}

	temperature := float32(req.Temperature)
	cfg := &genai.GenerateContentConfig{Temperature: &temperature}

	var contents []*genai.Content
	var system []string
	for _, m := range req.Messages {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, m.Content)
		case llm.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n"), genai.RoleUser)
	}

	log.DebugContext(ctx, "sending gemini request", "model", model, "contents", len(contents))

	resp, err := c.models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		mapped := mapError(err)
		log.WarnContext(ctx, "gemini request failed",
			"kind", llm.KindOf(mapped).String(),
			"error", redact.Error(err))
		return "", mapped
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", llm.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return "", fmt.Errorf("%w: empty candidate", llm.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty message", llm.ErrInvalidResponse)
	}
	return text, nil
}

// mapError converts GenAI SDK errors into *llm.ProviderError.
func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.ProviderError{
			Kind:       llm.KindForStatus(apiErr.Code),
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &llm.ProviderError{
			Kind:       llm.KindForStatus(apiErrPtr.Code),
			StatusCode: apiErrPtr.Code,
			Message:    apiErrPtr.Message,
			Err:        err,
		}
	}

	return llm.NewTransportError(err)
}
