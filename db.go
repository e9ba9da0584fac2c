package main

import (
	"fmt"
	"log/slog"

	"flashcards/pkg/config"
	"flashcards/pkg/store"

	"gorm.io/gorm"
)

// initDB opens the configured database and, when migrate is set, brings the
// schema up to date.
func initDB(cfg *config.Config, logger *slog.Logger, migrate bool) (*gorm.DB, error) {
	db, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect %s database: %w", cfg.DBDriver, err)
	}
	if !migrate {
		logger.Info("schema migration disabled", "env", "DB_AUTO_MIGRATE")
		return db, nil
	}
	if err := store.Migrate(db); err != nil {
		return nil, err
	}
	logger.Info("schema migrated", "driver", cfg.DBDriver)
	return db, nil
}
