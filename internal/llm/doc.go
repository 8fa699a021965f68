// Package llm defines the boundary between the application and external
// language model providers. A Completer sends a chat request and returns the
// assistant's text; provider adapters live under internal/platform.
//
// Adapters report failures as *ProviderError so callers can decide on retry
// or fallback from the error Kind instead of matching message text.
package llm
