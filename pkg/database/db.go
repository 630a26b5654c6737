package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite database at dbPath with foreign keys enabled.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers anyway; one connection keeps things simple.
	db.SetMaxOpenConns(1)
	return db, nil
}
