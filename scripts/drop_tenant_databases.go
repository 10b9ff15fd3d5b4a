package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	rows, err := db.Query(`SELECT datname FROM pg_database WHERE datname LIKE 'documaster_%'`)
	if err != nil {
		log.Fatalf("Failed to list tenant databases: %v", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Fatalf("Failed to scan database name: %v", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to read database names: %v", err)
	}
	rows.Close()

	for _, name := range names {
		if _, err := db.Exec(fmt.Sprintf(`DROP DATABASE IF EXISTS %q WITH (FORCE)`, name)); err != nil {
			log.Fatalf("Failed to drop %s: %v", name, err)
		}
		fmt.Printf("Dropped %s\n", name)
	}

	fmt.Printf("Dropped %d tenant database(s)\n", len(names))
}
