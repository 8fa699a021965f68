package mocks

import (
	"context"
	"sync"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
)

// ClassifyCall records the arguments of one Classify call.
type ClassifyCall struct {
	Title       string
	Description string
	Settings    config.ProviderSettings
}

// MockClassifier implements service.Classifier for testing
type MockClassifier struct {
	// ClassifyFn allows test cases to mock the Classify behavior
	ClassifyFn func(ctx context.Context, title, description string, settings config.ProviderSettings) domain.Classification

	// Result is returned when ClassifyFn is nil
	Result domain.Classification

	mu    sync.Mutex
	calls []ClassifyCall
}

// Classify implements the service.Classifier interface
func (m *MockClassifier) Classify(
	ctx context.Context,
	title, description string,
	settings config.ProviderSettings,
) domain.Classification {
	m.mu.Lock()
	m.calls = append(m.calls, ClassifyCall{Title: title, Description: description, Settings: settings})
	m.mu.Unlock()

	if m.ClassifyFn != nil {
		return m.ClassifyFn(ctx, title, description, settings)
	}
	return m.Result
}

// Calls returns a copy of the recorded calls.
func (m *MockClassifier) Calls() []ClassifyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ClassifyCall(nil), m.calls...)
}

// NewMockClassifierWithResult creates a MockClassifier returning c.
func NewMockClassifierWithResult(c domain.Classification) *MockClassifier {
	return &MockClassifier{Result: c}
}

// NewFallbackClassifier creates a MockClassifier that always falls back.
func NewFallbackClassifier() *MockClassifier {
	return &MockClassifier{Result: domain.FallbackClassification()}
}
