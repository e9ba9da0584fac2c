package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ConfidenceLevel is the user's self-assessment of a question, ordered from
// VeryLow to VeryHigh. VeryHigh questions count as mastered.
type ConfidenceLevel int

const (
	VeryLow ConfidenceLevel = iota + 1
	Low
	Medium
	High
	VeryHigh
)

func (c ConfidenceLevel) Valid() bool {
	return c >= VeryLow && c <= VeryHigh
}

// Value stores the level as a plain integer.
func (c ConfidenceLevel) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c ConfidenceLevel) String() string {
	switch c {
	case VeryLow:
		return "VeryLow"
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	case VeryHigh:
		return "VeryHigh"
	}
	return fmt.Sprintf("ConfidenceLevel(%d)", int(c))
}

// Question is a single flashcard owned by a user.
type Question struct {
	ID           string          `gorm:"primaryKey;size:36"`
	UserID       string          `gorm:"size:36;not null;index"`
	Prompt       string          `gorm:"size:500;not null"`
	Hint         *string         `gorm:"size:500"`
	Answer       string          `gorm:"size:1000;not null"`
	Confidence   ConfidenceLevel `gorm:"not null;default:1"`
	CreatedAtUTC time.Time       `gorm:"column:created_at_utc;not null"`
	UpdatedAtUTC time.Time       `gorm:"column:updated_at_utc;not null"`

	QuestionCategories []QuestionCategory `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// QuestionCategory is one edge of the question/category many-to-many relation.
// Both ends must belong to the same user.
type QuestionCategory struct {
	QuestionID string `gorm:"primaryKey;size:36"`
	CategoryID string `gorm:"primaryKey;size:36;index"`
}

func (QuestionCategory) TableName() string {
	return "question_categories"
}
