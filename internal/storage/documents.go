package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore persists whole named documents. Read returns
// ErrDocumentNotFound when nothing has been written under the name yet.
type DocumentStore interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// FileDocumentStore keeps each document as <directory>/<name>.json.
type FileDocumentStore struct {
	directory string
}

func NewFileDocumentStore(directory string) *FileDocumentStore {
	return &FileDocumentStore{directory: directory}
}

func (store *FileDocumentStore) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(store.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", name, err)
	}
	return data, nil
}

// Write replaces the document atomically: readers see either the previous
// content or the new one, never a partial file.
func (store *FileDocumentStore) Write(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(store.directory, 0755); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	temporary, err := os.CreateTemp(store.directory, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary document %s: %w", name, err)
	}
	defer os.Remove(temporary.Name())

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing document %s: %w", name, err)
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		return fmt.Errorf("syncing document %s: %w", name, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing document %s: %w", name, err)
	}

	if err := os.Rename(temporary.Name(), store.path(name)); err != nil {
		return fmt.Errorf("replacing document %s: %w", name, err)
	}
	return nil
}

func (store *FileDocumentStore) path(name string) string {
	return filepath.Join(store.directory, name+".json")
}
