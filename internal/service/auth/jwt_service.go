// Package auth issues and validates bearer tokens and hashes passwords.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for userID.
	GenerateToken(ctx context.Context, userID int64) (string, error)

	// ValidateToken validates the token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of an access token.
type Claims struct {
	UserID    int64
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
