package mocks

import (
	"context"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// GenerateAdminTokenFn allows test cases to mock the GenerateAdminToken behavior
	GenerateAdminTokenFn func(ctx context.Context, subject string) (string, error)

	// ValidateAdminTokenFn allows test cases to mock the ValidateAdminToken behavior
	ValidateAdminTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token       string
	Err         error
	ValidateErr error
	Claims      *auth.Claims
}

// GenerateAdminToken implements the auth.TokenService interface
func (m *MockTokenService) GenerateAdminToken(ctx context.Context, subject string) (string, error) {
	if m.GenerateAdminTokenFn != nil {
		return m.GenerateAdminTokenFn(ctx, subject)
	}
	return m.Token, m.Err
}

// ValidateAdminToken implements the auth.TokenService interface
func (m *MockTokenService) ValidateAdminToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateAdminTokenFn != nil {
		return m.ValidateAdminTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
