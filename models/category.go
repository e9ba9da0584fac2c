package models

import "time"

// Category is a user-owned label; names are unique per user.
type Category struct {
	ID           string    `gorm:"primaryKey;size:36"`
	UserID       string    `gorm:"size:36;not null;uniqueIndex:idx_categories_user_name"`
	Name         string    `gorm:"size:100;not null;uniqueIndex:idx_categories_user_name"`
	CreatedAtUTC time.Time `gorm:"column:created_at_utc;not null"`
	UpdatedAtUTC time.Time `gorm:"column:updated_at_utc;not null"`

	QuestionCategories []QuestionCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
