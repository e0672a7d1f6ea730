package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestJWTSecret is a signing key that satisfies the minimum length check.
const TestJWTSecret = "test-jwt-secret-that-is-32-chars-long"

// NewTestJWTService creates an HS256 service with an injected clock.
// A nil timeFunc uses time.Now.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		method:        jwt.SigningMethodHS256,
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
	}
}
