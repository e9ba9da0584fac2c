package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flashcards/models"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned by a UserStore when no user matches.
var ErrUserNotFound = errors.New("user not found")

// UserStore persists users and their current refresh token.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*models.User, error)
	// Create inserts the user; a duplicate email yields ErrEmailAlreadyExists.
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

// Session is the outcome of every operation that starts or renews a session.
type Session struct {
	User                  *models.User
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// Flow orchestrates register, login, refresh, logout and password change.
type Flow struct {
	users  UserStore
	hasher *PasswordHasher
	tokens *TokenIssuer
	now    func() time.Time
}

func NewFlow(users UserStore, hasher *PasswordHasher, tokens *TokenIssuer) *Flow {
	return &Flow{users: users, hasher: hasher, tokens: tokens, now: time.Now}
}

func (f *Flow) Register(ctx context.Context, email, password string) (*Session, error) {
	_, err := f.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailAlreadyExists
	case !errors.Is(err, ErrUserNotFound):
		return nil, err
	}

	if ok, violations := f.hasher.VerifyPasswordStrength(password); !ok {
		return nil, &WeakPasswordError{Violations: violations}
	}

	user := &models.User{ID: uuid.NewString(), Email: email}
	if err := f.setPassword(user, password); err != nil {
		return nil, err
	}
	session, err := f.rotate(user)
	if err != nil {
		return nil, err
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return session, nil
}

// Login answers ErrInvalidCredentials for both unknown emails and wrong passwords.
func (f *Flow) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := f.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := f.hasher.VerifyPassword(password, user.PasswordHash, user.PasswordSalt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return f.rotateAndSave(ctx, user)
}

// Refresh exchanges a live refresh token for a new pair. The expiry is exclusive.
func (f *Flow) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}
	user, err := f.users.FindByRefreshToken(ctx, refreshToken)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, err
	}
	if !user.RefreshTokenExpiresAtUTC.After(f.now().UTC()) {
		return nil, ErrInvalidRefreshToken
	}
	return f.rotateAndSave(ctx, user)
}

// Logout clears the user's refresh token. Logging out twice is harmless.
func (f *Flow) Logout(ctx context.Context, userID string) error {
	user, err := f.lookup(ctx, userID)
	if err != nil {
		return err
	}
	user.ClearRefreshToken()
	if err := f.users.Save(ctx, user); err != nil {
		return err
	}
	return nil
}

// ChangePassword replaces the password and starts a new session.
func (f *Flow) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*Session, error) {
	user, err := f.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	ok, err := f.hasher.VerifyPassword(currentPassword, user.PasswordHash, user.PasswordSalt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if ok, violations := f.hasher.VerifyPasswordStrength(newPassword); !ok {
		return nil, &WeakPasswordError{Violations: violations}
	}

	if err := f.setPassword(user, newPassword); err != nil {
		return nil, err
	}
	return f.rotateAndSave(ctx, user)
}

// Me returns the authenticated user.
func (f *Flow) Me(ctx context.Context, userID string) (*models.User, error) {
	return f.lookup(ctx, userID)
}

func (f *Flow) lookup(ctx context.Context, userID string) (*models.User, error) {
	user, err := f.users.FindByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (f *Flow) setPassword(user *models.User, password string) error {
	salt, err := f.hasher.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := f.hasher.HashPassword(password, salt)
	if err != nil {
		return err
	}
	user.PasswordSalt = salt
	user.PasswordHash = hash
	return nil
}

// rotate replaces the user's refresh token in memory and issues an access token.
func (f *Flow) rotate(user *models.User) (*Session, error) {
	access, err := f.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := f.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	expiresAt := f.now().UTC().Add(f.tokens.RefreshTokenLifetime())
	user.SetRefreshToken(refresh, expiresAt)
	return &Session{
		User:                  user,
		AccessToken:           access,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: user.RefreshTokenExpiresAtUTC,
	}, nil
}

func (f *Flow) rotateAndSave(ctx context.Context, user *models.User) (*Session, error) {
	session, err := f.rotate(user)
	if err != nil {
		return nil, err
	}
	if err := f.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}
