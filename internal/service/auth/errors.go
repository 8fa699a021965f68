package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrWrongRole indicates a validly signed token that does not grant admin access
	ErrWrongRole = errors.New("token does not grant admin access")

	// ErrSecretTooShort is returned by NewTokenService for weak signing secrets
	ErrSecretTooShort = errors.New("admin secret must be at least 32 characters")
)
