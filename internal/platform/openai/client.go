// Package openai implements llm.Completer against OpenAI-compatible
// chat completion endpoints, including OpenRouter and local servers.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/llm"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/redact"
)

// maxResponseBytes caps how much of a provider reply is read.
const maxResponseBytes = 4 << 20

// Options tune a Client beyond the provider settings.
type Options struct {
	// HTTPClient defaults to a client with Timeout.
	HTTPClient *http.Client
	Timeout    time.Duration
	// Referer and AppTitle are sent as HTTP-Referer and X-Title when the
	// endpoint is OpenRouter.
	Referer  string
	AppTitle string
	Logger   *slog.Logger
}

// Client calls POST {base_url}/chat/completions.
type Client struct {
	endpoint   string
	token      string
	openRouter bool
	referer    string
	appTitle   string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ llm.Completer = (*Client)(nil)

// NewClient validates settings and returns a Client.
func NewClient(settings config.ProviderSettings, opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(settings.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", llm.ErrInvalidConfig)
	}

	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q is not absolute", llm.ErrInvalidConfig, base)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		endpoint:   base + "/chat/completions",
		token:      settings.APIToken,
		openRouter: strings.Contains(parsed.Host, "openrouter.ai"),
		referer:    opts.Referer,
		appTitle:   opts.AppTitle,
		httpClient: httpClient,
		logger:     log.With("component", "openai_client"),
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Code    any    `json:"code,omitempty"`
}

// Complete sends req and returns the first choice's message content.
func (c *Client) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	body, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.openRouter {
		if c.referer != "" {
			httpReq.Header.Set("HTTP-Referer", c.referer)
		}
		if c.appTitle != "" {
			httpReq.Header.Set("X-Title", c.appTitle)
		}
	}

	log.DebugContext(ctx, "sending chat completion request",
		"endpoint", c.endpoint,
		"model", req.Model,
		"token_configured", c.token != "",
		"token_length", len(c.token))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WarnContext(ctx, "chat completion transport failure", "error", redact.Error(err))
		return "", llm.NewTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", llm.NewTransportError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(payload, resp.StatusCode)
		log.WarnContext(ctx, "chat completion rejected",
			"status", resp.StatusCode,
			"error", redact.String(msg))
		return "", llm.NewStatusError(resp.StatusCode, msg)
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed JSON: %v", llm.ErrInvalidResponse, err)
	}

	if parsed.Error != nil {
		return "", &llm.ProviderError{Kind: llm.KindOther, StatusCode: resp.StatusCode, Message: parsed.Error.Message}
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", llm.ErrInvalidResponse)
	}

	content := parsed.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty message", llm.ErrInvalidResponse)
	}

	return content, nil
}

// errorMessage extracts a human-readable reason from an error body.
func errorMessage(payload []byte, status int) string {
	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}

	text := strings.TrimSpace(string(payload))
	if text == "" {
		return http.StatusText(status)
	}
	if len(text) > 512 {
		text = text[:512]
	}
	return text
}

