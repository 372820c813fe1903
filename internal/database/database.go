package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// pragmas run on the single pooled connection right after opening.
var pragmas = []struct {
	statement   string
	description string
}{
	{statement: "PRAGMA journal_mode=WAL", description: "setting WAL mode"},
	{statement: "PRAGMA foreign_keys=ON", description: "enabling foreign keys"},
	{statement: "PRAGMA busy_timeout=5000", description: "setting busy timeout"},
}

// Open opens the planner database at databasePath, creating its directory
// when needed. ":memory:" opens a private in-memory database.
func Open(databasePath string) (*sql.DB, error) {
	if databasePath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(databasePath), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each ":memory:" connection is its own database.
	database.SetMaxOpenConns(1)

	for _, pragma := range pragmas {
		if _, err := database.Exec(pragma.statement); err != nil {
			database.Close()
			return nil, fmt.Errorf("%s: %w", pragma.description, err)
		}
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return database, nil
}
