package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migration is one numbered schema step. Files are named
// <version>_<description>.up.sql with an optional matching .down.sql.
type migration struct {
	version int
	name    string
	up      string
	down    string
}

// Migrate applies every embedded migration that has not been applied yet, in
// version order, each in its own transaction.
func Migrate(database *sql.DB) error {
	if err := ensureMigrationsTable(database); err != nil {
		return err
	}

	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	applied, err := AppliedVersions(database)
	if err != nil {
		return err
	}
	done := make(map[int]bool, len(applied))
	for _, version := range applied {
		done[version] = true
	}

	for _, step := range migrations {
		if done[step.version] {
			continue
		}
		err := inTransaction(database, func(transaction *sql.Tx) error {
			if _, err := transaction.Exec(step.up); err != nil {
				return fmt.Errorf("executing migration %s: %w", step.name, err)
			}
			if _, err := transaction.Exec("INSERT INTO schema_migrations (version) VALUES (?)", step.version); err != nil {
				return fmt.Errorf("recording migration %d: %w", step.version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		slog.Info("applied migration", "version", step.version, "name", step.name)
	}

	return nil
}

// Rollback reverts the most recently applied migrations, newest first. It
// stops with an error at a migration that ships no down script.
func Rollback(database *sql.DB, steps int) error {
	if err := ensureMigrationsTable(database); err != nil {
		return err
	}

	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	byVersion := make(map[int]migration, len(migrations))
	for _, step := range migrations {
		byVersion[step.version] = step
	}

	applied, err := AppliedVersions(database)
	if err != nil {
		return err
	}

	for i := len(applied) - 1; i >= 0 && steps > 0; i, steps = i-1, steps-1 {
		step, ok := byVersion[applied[i]]
		if !ok || step.down == "" {
			return fmt.Errorf("rolling back migration %d: no down script", applied[i])
		}
		err := inTransaction(database, func(transaction *sql.Tx) error {
			if _, err := transaction.Exec(step.down); err != nil {
				return fmt.Errorf("reverting migration %s: %w", step.name, err)
			}
			if _, err := transaction.Exec("DELETE FROM schema_migrations WHERE version = ?", step.version); err != nil {
				return fmt.Errorf("unrecording migration %d: %w", step.version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		slog.Info("reverted migration", "version", step.version, "name", step.name)
	}

	return nil
}

// AppliedVersions lists applied migration versions in ascending order.
func AppliedVersions(database *sql.DB) ([]int, error) {
	rows, err := database.Query("SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("listing applied migrations: %w", err)
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scanning migration version: %w", err)
		}
		versions = append(versions, version)
	}
	return versions, rows.Err()
}

func ensureMigrationsTable(database *sql.DB) error {
	if _, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}
	return nil
}

func loadMigrations() ([]migration, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	byVersion := make(map[int]*migration)
	for _, entry := range entries {
		filename := entry.Name()
		base, direction, ok := splitMigrationName(filename)
		if !ok {
			continue
		}
		version, err := parseVersion(base)
		if err != nil {
			return nil, fmt.Errorf("parsing migration %s: %w", filename, err)
		}

		content, err := migrationsFS.ReadFile(path.Join("migrations", filename))
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", filename, err)
		}

		step, exists := byVersion[version]
		if !exists {
			step = &migration{version: version, name: base}
			byVersion[version] = step
		}
		if direction == "up" {
			step.up = string(content)
		} else {
			step.down = string(content)
		}
	}

	migrations := make([]migration, 0, len(byVersion))
	for _, step := range byVersion {
		if step.up == "" {
			return nil, fmt.Errorf("migration %s has no up script", step.name)
		}
		migrations = append(migrations, *step)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})
	return migrations, nil
}

func splitMigrationName(filename string) (base, direction string, ok bool) {
	if base, found := strings.CutSuffix(filename, ".up.sql"); found {
		return base, "up", true
	}
	if base, found := strings.CutSuffix(filename, ".down.sql"); found {
		return base, "down", true
	}
	return "", "", false
}

func parseVersion(base string) (int, error) {
	prefix, _, _ := strings.Cut(base, "_")
	version, err := strconv.Atoi(prefix)
	if err != nil || version < 1 {
		return 0, fmt.Errorf("invalid version prefix %q", prefix)
	}
	return version, nil
}

func inTransaction(database *sql.DB, apply func(*sql.Tx) error) error {
	transaction, err := database.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := apply(transaction); err != nil {
		transaction.Rollback()
		return err
	}
	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
