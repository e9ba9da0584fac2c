package store

import (
	"gorm.io/gorm"
)

const (
	createdField = "CreatedAtUTC"
	updatedField = "UpdatedAtUTC"
)

// RegisterTimestamps installs one create and one update callback that stamp
// CreatedAtUTC/UpdatedAtUTC on any model declaring them.
func RegisterTimestamps(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("flashcards:stamp_create", stampCreate); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").Register("flashcards:stamp_update", stampUpdate)
}

func stampCreate(db *gorm.DB) {
	if !hasTimestamps(db) {
		return
	}
	now := db.NowFunc()
	db.Statement.SetColumn(createdField, now, true)
	db.Statement.SetColumn(updatedField, now, true)
}

func stampUpdate(db *gorm.DB) {
	if !hasTimestamps(db) {
		return
	}
	db.Statement.SetColumn(updatedField, db.NowFunc(), true)
}

func hasTimestamps(db *gorm.DB) bool {
	if db.Error != nil || db.Statement.Schema == nil {
		return false
	}
	return db.Statement.Schema.LookUpField(createdField) != nil &&
		db.Statement.Schema.LookUpField(updatedField) != nil
}
