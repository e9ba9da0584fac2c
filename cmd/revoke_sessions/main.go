package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Clears refresh tokens so every (or one) user has to log in again. Access
// tokens already issued stay valid until they expire.
func main() {
	email := flag.String("email", "", "only revoke the session of this user")
	flag.Parse()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	query := `UPDATE users SET refresh_token=NULL, refresh_token_expires_at_utc=$1, updated_at_utc=NOW() WHERE refresh_token IS NOT NULL`
	args := []any{time.Time{}}
	if *email != "" {
		query += ` AND email=$2`
		args = append(args, *email)
	}
	res, err := db.Exec(query, args...)
	if err != nil {
		log.Fatalf("revoke sessions: %v", err)
	}
	n, _ := res.RowsAffected()
	fmt.Printf("revoked sessions: %d\n", n)
}
