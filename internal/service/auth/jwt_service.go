package auth

import (
	"context"
	"time"
)

// JWTService issues and validates stateless bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for subject.
	// It returns the token and its expiry instant.
	GenerateToken(ctx context.Context, subject string) (string, time.Time, error)

	// ValidateToken verifies algorithm, signature and expiry, returning the claims.
	// Every failure is reported as ErrInvalidToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of an access token.
type Claims struct {
	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}
