package mocks

import (
	"context"
	"sync"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/llm"
)

// CompleterResponse is one scripted reply of a MockCompleter.
type CompleterResponse struct {
	Text string
	Err  error
}

// MockCompleter implements llm.Completer for testing
type MockCompleter struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, req llm.ChatRequest) (string, error)

	// Responses are returned in order; the last one repeats once exhausted.
	Responses []CompleterResponse

	// Call tracking for verification
	CompleteCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Complete was called
		Count int

		// Requests contains all requests passed to Complete calls
		Requests []llm.ChatRequest
	}
}

// Complete implements the llm.Completer interface
func (m *MockCompleter) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	m.CompleteCalls.mu.Lock()
	idx := m.CompleteCalls.Count
	m.CompleteCalls.Count++
	m.CompleteCalls.Requests = append(m.CompleteCalls.Requests, req)
	m.CompleteCalls.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}

	if len(m.Responses) == 0 {
		return "", llm.ErrInvalidResponse
	}
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	r := m.Responses[idx]
	return r.Text, r.Err
}

// Calls returns how many times Complete was called.
func (m *MockCompleter) Calls() int {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return m.CompleteCalls.Count
}

// NewMockCompleterWithText creates a MockCompleter that always returns text
func NewMockCompleterWithText(text string) *MockCompleter {
	return &MockCompleter{Responses: []CompleterResponse{{Text: text}}}
}

// NewMockCompleterWithError creates a MockCompleter that always fails with err
func NewMockCompleterWithError(err error) *MockCompleter {
	return &MockCompleter{Responses: []CompleterResponse{{Err: err}}}
}

// MockFactory implements llm.Factory for testing
type MockFactory struct {
	// NewFn allows test cases to mock the New behavior
	NewFn func(settings config.ProviderSettings) (llm.Completer, error)

	// Completer is returned when NewFn is nil
	Completer llm.Completer
	Err       error

	mu       sync.Mutex
	settings []config.ProviderSettings
}

// New implements the llm.Factory interface
func (f *MockFactory) New(settings config.ProviderSettings) (llm.Completer, error) {
	f.mu.Lock()
	f.settings = append(f.settings, settings)
	f.mu.Unlock()

	if f.NewFn != nil {
		return f.NewFn(settings)
	}
	return f.Completer, f.Err
}

// Settings returns every settings value New was called with.
func (f *MockFactory) Settings() []config.ProviderSettings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]config.ProviderSettings(nil), f.settings...)
}
