package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize          = 16 // bytes
	KeySize           = 32 // bytes
	DefaultIterations = 100_000
	MinPasswordLength = 12
)

// PasswordHasher derives salted PBKDF2-HMAC-SHA256 hashes. Salts and hashes
// are exchanged as standard base64 strings.
type PasswordHasher struct {
	iterations int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{iterations: DefaultIterations}
}

// NewPasswordHasherWithIterations is NewPasswordHasher with a custom work
// factor. Hashes made with different counts do not verify against each other.
func NewPasswordHasherWithIterations(iterations int) *PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &PasswordHasher{iterations: iterations}
}

// GenerateSalt returns SaltSize random bytes, base64 encoded.
func (h *PasswordHasher) GenerateSalt() (string, error) {
	b := make([]byte, SaltSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// HashPassword derives the hash of password keyed by the base64 salt.
func (h *PasswordHasher) HashPassword(password, salt string) (string, error) {
	key, err := h.derive(password, salt)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the stored hash and salt.
// A malformed hash or salt is an error, not a mismatch.
func (h *PasswordHasher) VerifyPassword(password, hash, salt string) (bool, error) {
	expected, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return false, fmt.Errorf("decode password hash: %w", err)
	}
	actual, err := h.derive(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(expected, actual) == 1, nil
}

func (h *PasswordHasher) derive(password, salt string) ([]byte, error) {
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("decode password salt: %w", err)
	}
	return pbkdf2.Key([]byte(password), saltBytes, h.iterations, KeySize, sha256.New), nil
}

// VerifyPasswordStrength checks the password policy and returns every failed rule.
func (h *PasswordHasher) VerifyPasswordStrength(password string) (bool, []string) {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			special = true
		}
	}

	var errs []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs = append(errs, fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLength))
	}
	if !upper {
		errs = append(errs, "Password must contain at least one uppercase letter.")
	}
	if !lower {
		errs = append(errs, "Password must contain at least one lowercase letter.")
	}
	if !digit {
		errs = append(errs, "Password must contain at least one digit.")
	}
	if !special {
		errs = append(errs, "Password must contain at least one special character.")
	}
	return len(errs) == 0, errs
}
