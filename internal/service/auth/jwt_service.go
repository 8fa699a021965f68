// Package auth issues and checks the short-lived admin tokens that guard
// runtime configuration changes. Tokens are HS256 JWTs signed with the
// shared admin secret.
package auth

import (
	"context"
	"time"
)

// RoleAdmin is the only role tokens are minted for.
const RoleAdmin = "admin"

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 32

// TokenService mints and validates admin tokens.
type TokenService interface {
	// GenerateAdminToken returns a signed admin token for subject.
	GenerateAdminToken(ctx context.Context, subject string) (string, error)

	// ValidateAdminToken checks signature, expiry and role.
	ValidateAdminToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an admin token.
type Claims struct {
	Role      string    `json:"role,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
