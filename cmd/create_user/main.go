package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"flashcards/pkg/auth"
	"flashcards/pkg/config"
	"flashcards/pkg/seed"
	"flashcards/pkg/store"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_user <email> <password>")
		os.Exit(2)
	}
	email := os.Args[1]
	password := os.Args[2]

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	user, err := seed.CreateUser(context.Background(), db, auth.NewPasswordHasher(), email, password)
	var weak *auth.WeakPasswordError
	switch {
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		fmt.Printf("user %s already exists\n", email)
		os.Exit(0)
	case errors.As(err, &weak):
		for _, v := range weak.Violations {
			fmt.Println(v)
		}
		os.Exit(1)
	case err != nil:
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%s\n", user.Email, user.ID)
}
