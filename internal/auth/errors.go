package auth

import "errors"

// Sentinel errors for verification operations.
var (
	// ErrNoCredentials indicates that no credentials were provided.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidToken indicates that the token is invalid.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates that the token has expired.
	ErrTokenExpired = errors.New("token expired")

	// ErrKeyNotFound indicates that no signing key is configured.
	ErrKeyNotFound = errors.New("signing key not found")
)
