package seed

import (
	"context"
	"errors"
	"fmt"

	"flashcards/models"
	"flashcards/pkg/auth"
	"flashcards/pkg/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser adds an account with no session. The password must pass the
// same strength rules as registration.
func CreateUser(ctx context.Context, db *gorm.DB, hasher *auth.PasswordHasher, email, password string) (*models.User, error) {
	if ok, violations := hasher.VerifyPasswordStrength(password); !ok {
		return nil, &auth.WeakPasswordError{Violations: violations}
	}
	user := &models.User{ID: uuid.NewString(), Email: email}
	if err := setPassword(hasher, user, password); err != nil {
		return nil, err
	}
	if err := store.NewUserRepository(db).Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword replaces the password of email and ends its session.
func ResetPassword(ctx context.Context, db *gorm.DB, hasher *auth.PasswordHasher, email, password string) (*models.User, error) {
	if ok, violations := hasher.VerifyPasswordStrength(password); !ok {
		return nil, &auth.WeakPasswordError{Violations: violations}
	}
	users := store.NewUserRepository(db)
	user, err := users.FindByEmail(ctx, email)
	if errors.Is(err, auth.ErrUserNotFound) {
		return nil, fmt.Errorf("user %s: %w", email, err)
	}
	if err != nil {
		return nil, err
	}
	if err := setPassword(hasher, user, password); err != nil {
		return nil, err
	}
	user.ClearRefreshToken()
	if err := users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func setPassword(hasher *auth.PasswordHasher, user *models.User, password string) error {
	salt, err := hasher.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := hasher.HashPassword(password, salt)
	if err != nil {
		return err
	}
	user.PasswordSalt = salt
	user.PasswordHash = hash
	return nil
}
