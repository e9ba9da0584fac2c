package models

import (
	"time"
)

// User owns categories and questions and carries the single live refresh token.
// RefreshToken and RefreshTokenExpiresAtUTC are set together; a cleared session
// has a nil token and a zero expiry.
type User struct {
	ID                       string    `gorm:"primaryKey;size:36"`
	Email                    string    `gorm:"size:256;not null;uniqueIndex"`
	PasswordHash             string    `gorm:"size:500;not null"`
	PasswordSalt             string    `gorm:"size:100;not null"`
	RefreshToken             *string   `gorm:"size:500;index"`
	RefreshTokenExpiresAtUTC time.Time `gorm:"column:refresh_token_expires_at_utc;not null"`
	CreatedAtUTC             time.Time `gorm:"column:created_at_utc;not null"`
	UpdatedAtUTC             time.Time `gorm:"column:updated_at_utc;not null"`

	Categories []Category `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Questions  []Question `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// SetRefreshToken stores a new refresh token together with its expiry.
func (u *User) SetRefreshToken(token string, expiresAt time.Time) {
	u.RefreshToken = &token
	u.RefreshTokenExpiresAtUTC = expiresAt.UTC()
}

// ClearRefreshToken drops the session; the zero expiry is always in the past.
func (u *User) ClearRefreshToken() {
	u.RefreshToken = nil
	u.RefreshTokenExpiresAtUTC = time.Time{}
}
