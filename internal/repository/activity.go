package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/martellev/mealplanner/internal/models"
)

type ActivityRepository interface {
	Record(ctx context.Context, message string) error
	Recent(ctx context.Context, limit int) ([]models.ActivityEntry, error)
}

type SQLiteActivityRepository struct {
	database *sql.DB
}

func NewActivityRepository(database *sql.DB) *SQLiteActivityRepository {
	return &SQLiteActivityRepository{database: database}
}

func (repository *SQLiteActivityRepository) Record(ctx context.Context, message string) error {
	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO activity_log (id, message, created_at) VALUES (?, ?, ?)",
		uuid.New().String(), message, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording activity: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (repository *SQLiteActivityRepository) Recent(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, message, created_at FROM activity_log
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("finding recent activity: %w", err)
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var entry models.ActivityEntry
		if err := rows.Scan(&entry.ID, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
