package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt_SizeAndUniqueness(t *testing.T) {
	h := NewPasswordHasher()

	a, err := h.GenerateSalt()
	require.NoError(t, err)
	b, err := h.GenerateSalt()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, SaltSize)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_DeterministicPerSalt(t *testing.T) {
	h := NewPasswordHasher()
	salt, err := h.GenerateSalt()
	require.NoError(t, err)

	first, err := h.HashPassword("Str0ng!Passw0rd", salt)
	require.NoError(t, err)
	second, err := h.HashPassword("Str0ng!Passw0rd", salt)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	raw, err := base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, KeySize)

	otherSalt, err := h.GenerateSalt()
	require.NoError(t, err)
	third, err := h.HashPassword("Str0ng!Passw0rd", otherSalt)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestVerifyPassword(t *testing.T) {
	h := NewPasswordHasher()
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	hash, err := h.HashPassword("correct horse", salt)
	require.NoError(t, err)

	ok, err := h.VerifyPassword("correct horse", hash, salt)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, wrong := range []string{"correct hors", "Correct horse", "", "correct horse "} {
		ok, err := h.VerifyPassword(wrong, hash, salt)
		require.NoError(t, err)
		assert.False(t, ok, "password %q must not verify", wrong)
	}
}

func TestVerifyPassword_MalformedEncoding(t *testing.T) {
	h := NewPasswordHasher()
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	hash, err := h.HashPassword("pw", salt)
	require.NoError(t, err)

	_, err = h.VerifyPassword("pw", "%%%not-base64", salt)
	assert.Error(t, err)

	_, err = h.VerifyPassword("pw", hash, "%%%not-base64")
	assert.Error(t, err)

	_, err = h.HashPassword("pw", "%%%not-base64")
	assert.Error(t, err)
}

func TestVerifyPasswordStrength(t *testing.T) {
	h := NewPasswordHasher()

	tests := []struct {
		name     string
		password string
		wantOK   bool
		wantErrs int
	}{
		{"strong", "Str0ng!Passw0rd", true, 0},
		{"too short", "Sh0rt!pw", false, 1},
		{"no upper", "str0ng!passw0rd", false, 1},
		{"no lower", "STR0NG!PASSW0RD", false, 1},
		{"no digit", "Strong!Password", false, 1},
		{"no special", "Str0ngPassw0rd", false, 1},
		{"empty", "", false, 5},
		{"exactly twelve", "Abcdefgh1!xy", true, 0},
		{"unicode special", "Passwörd1234€", true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, errs := h.VerifyPasswordStrength(tc.password)
			assert.Equal(t, tc.wantOK, ok)
			assert.Len(t, errs, tc.wantErrs)
		})
	}
}

func TestVerifyPasswordStrength_ReportsEveryRule(t *testing.T) {
	_, errs := NewPasswordHasher().VerifyPasswordStrength("abc")
	assert.Equal(t, []string{
		"Password must be at least 12 characters long.",
		"Password must contain at least one uppercase letter.",
		"Password must contain at least one digit.",
		"Password must contain at least one special character.",
	}, errs)
}
