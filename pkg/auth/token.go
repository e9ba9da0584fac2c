package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"flashcards/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenLifetime  = 15 * time.Minute
	refreshTokenLifetime = 7 * 24 * time.Hour
	refreshTokenBytes    = 32
	clockSkew            = time.Minute
)

// AccessClaims are the claims embedded in an access token. Subject is the user id.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenIssuer signs short-lived HS256 access tokens and mints opaque refresh tokens.
type TokenIssuer struct {
	key      []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewTokenIssuer fails when no signing key is configured.
func NewTokenIssuer(key, issuer, audience string) (*TokenIssuer, error) {
	if key == "" {
		return nil, ErrMissingSigningKey
	}
	return &TokenIssuer{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}, nil
}

// RefreshTokenLifetime is how long a persisted refresh token stays valid.
func (t *TokenIssuer) RefreshTokenLifetime() time.Duration {
	return refreshTokenLifetime
}

func (t *TokenIssuer) GenerateAccessToken(user *models.User) (string, error) {
	now := t.now().UTC()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenLifetime)),
		},
		Email: user.Email,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates signature, issuer, audience and expiry.
func (t *TokenIssuer) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(t.now),
	)
	claims := &AccessClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateRefreshToken returns 32 random bytes, base64url encoded. It has no
// relation to any access token.
func (t *TokenIssuer) GenerateRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
