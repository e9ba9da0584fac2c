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
	email := flag.String("email", "", "email of the account to reset")
	password := flag.String("password", "", "new plaintext password")
	flag.Parse()
	if *email == "" || *password == "" {
		log.Fatal("--email and --password are required")
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	user, err := seed.ResetPassword(context.Background(), db, auth.NewPasswordHasher(), *email, *password)
	if err != nil {
		log.Fatalf("reset failed: %v", err)
	}
	fmt.Printf("Password reset for user %s, session revoked\n", user.Email)
}
