package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Prints the foreign keys of the flashcards schema, to check that the
// question_categories cascades were created.
func main() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set")
	}
	if err := run(dsn); err != nil {
		log.Fatal(err)
	}
}

func run(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT con.conname, rel.relname, confrel.relname, pg_get_constraintdef(con.oid)
		FROM pg_constraint con
		JOIN pg_class rel ON rel.oid = con.conrelid
		JOIN pg_class confrel ON confrel.oid = con.confrelid
		WHERE con.contype = 'f'
		  AND rel.relname IN ('categories', 'questions', 'question_categories')
		ORDER BY rel.relname, con.conname;
	`)
	if err != nil {
		return fmt.Errorf("query constraints: %w", err)
	}
	defer rows.Close()

	fmt.Println("Foreign keys:")
	for rows.Next() {
		var name, table, refTable, def string
		if err := rows.Scan(&name, &table, &refTable, &def); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		fmt.Printf("- %s: %s -> %s\n    def: %s\n", name, table, refTable, def)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows err: %w", err)
	}
	return nil
}
