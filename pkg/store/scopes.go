package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnedBy restricts a query on an owned model to rows of userID. Every lookup of
// a category or question goes through it, so a row owned by someone else is
// indistinguishable from a missing one.
func OwnedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: "user_id"},
			Value:  userID,
		})
	}
}

// FindOwned loads the row of type T with the given id owned by userID.
// Ids that are not UUIDs never match.
func FindOwned[T any](db *gorm.DB, userID, id string) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var out T
	err := db.Scopes(OwnedBy(userID)).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find owned %T: %w", out, err)
	}
	return &out, nil
}
