package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken is returned for any token that fails validation:
	// malformed, bad signature, wrong algorithm or expired.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrInvalidCredentials is returned for an unknown user, a wrong password
	// or a disabled account. The cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
