package auth

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrMissingSigningKey   = errors.New("jwt signing key not configured")
	ErrInvalidToken        = errors.New("invalid token")
)

// WeakPasswordError lists every strength rule a password failed.
type WeakPasswordError struct {
	Violations []string
}

func (e *WeakPasswordError) Error() string {
	return "weak password: " + strings.Join(e.Violations, " ")
}
