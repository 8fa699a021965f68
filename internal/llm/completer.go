package llm

import (
	"context"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
)

// Role of a chat message author.
type Role string

// Chat roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a provider-neutral completion request.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
}

// Completer sends a chat request to a language model and returns the text
// of the first reply.
//
// Implementations return ErrInvalidResponse (possibly wrapped) when the
// provider answered without usable content, and *ProviderError for
// transport and HTTP failures.
type Completer interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Factory builds a Completer for a concrete set of provider settings.
// Settings can change between calls, so classification resolves a
// Completer per request.
type Factory interface {
	New(settings config.ProviderSettings) (Completer, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(settings config.ProviderSettings) (Completer, error)

// New calls f(settings).
func (f FactoryFunc) New(settings config.ProviderSettings) (Completer, error) {
	return f(settings)
}
