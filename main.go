package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"flashcards/pkg/auth"
	"flashcards/pkg/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Auto-load ./.env if present before reading vars
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("warning: reading .env failed: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := newLogger(cfg)

	// `./flashcards migrate` runs AutoMigrate and exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if _, err := initDB(cfg, logger, true); err != nil {
			log.Fatal(err)
		}
		fmt.Println("migration completed")
		return
	}

	db, err := initDB(cfg, logger, cfg.AutoMigrate)
	if err != nil {
		log.Fatal(err)
	}
	tokens, err := auth.NewTokenIssuer(cfg.JWTKey, cfg.JWTIssuer, cfg.JWTAudience)
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	newServer(db, tokens, cfg, logger).setupRoutes(r)

	logger.Info("listening", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DBDriver)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// newLogger writes text in development and JSON everywhere else.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
