package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"flashcards/pkg/auth"
	"flashcards/pkg/config"
	"flashcards/pkg/seed"
	"flashcards/pkg/store"
)

func main() {
	email := flag.String("email", seed.DemoEmail, "account to reset")
	password := flag.String("password", seed.DemoPassword, "password to set")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("env=%s driver=%s", cfg.Env, cfg.DBDriver)

	db, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Ping(); err != nil {
			log.Fatalf("db not reachable: %v", err)
		}
		defer sqlDB.Close()
	}

	res, err := seed.ResetDemoUser(context.Background(), db, auth.NewPasswordHasher(), *email, *password)
	if err != nil {
		log.Fatalf("reset failed: %v", err)
	}
	action := "reset"
	if res.Created {
		action = "created"
	}
	fmt.Printf("%s user %s id=%s: categories=%d questions=%d links=%d\n",
		action, res.User.Email, res.User.ID, res.Categories, res.Questions, res.Links)
}
