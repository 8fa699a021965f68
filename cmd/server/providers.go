package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/llm"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/gemini"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/openai"
)

// Provider kinds accepted in llm.provider.
const (
	providerOpenAI = "openai"
	providerGemini = "gemini"
)

// newProviderFactory returns a factory that builds a provider client for
// whatever settings are current when a task is classified. HTTP clients
// share one transport so connections are reused across settings changes.
func newProviderFactory(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) llm.Factory {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout()}

	return llm.FactoryFunc(func(settings config.ProviderSettings) (llm.Completer, error) {
		switch settings.Provider {
		case providerOpenAI, "":
			return openai.NewClient(settings, openai.Options{
				HTTPClient: httpClient,
				Referer:    cfg.Referer,
				AppTitle:   cfg.AppTitle,
				Logger:     log,
			})
		case providerGemini:
			return gemini.NewClient(ctx, settings, log)
		default:
			return nil, fmt.Errorf("%w: unknown provider %q", llm.ErrInvalidConfig, settings.Provider)
		}
	})
}
