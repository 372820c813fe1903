package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/martellev/mealplanner/internal/storage"
)

// SQLiteDocumentRepository is a storage.DocumentStore backed by the
// documents table.
type SQLiteDocumentRepository struct {
	database *sql.DB
}

func NewDocumentRepository(database *sql.DB) *SQLiteDocumentRepository {
	return &SQLiteDocumentRepository{database: database}
}

func (repository *SQLiteDocumentRepository) Read(ctx context.Context, name string) ([]byte, error) {
	var content []byte
	err := repository.database.QueryRowContext(ctx,
		"SELECT content FROM documents WHERE name = ?", name,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", name, err)
	}
	return content, nil
}

func (repository *SQLiteDocumentRepository) Write(ctx context.Context, name string, data []byte) error {
	now := time.Now().UTC()
	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO documents (name, content, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		name, data, now,
	)
	if err != nil {
		return fmt.Errorf("writing document %s: %w", name, err)
	}
	return nil
}
