package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileDocumentStore_ReadMissing(t *testing.T) {
	store := NewFileDocumentStore(t.TempDir())

	if _, err := store.Read(context.Background(), "meals"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestFileDocumentStore_WriteAndRead(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "data")
	store := NewFileDocumentStore(directory)
	ctx := context.Background()

	if err := store.Write(ctx, "plans", []byte(`[]`)); err != nil {
		t.Fatalf("writing document: %v", err)
	}
	if err := store.Write(ctx, "plans", []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatalf("overwriting document: %v", err)
	}

	data, err := store.Read(ctx, "plans")
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}
	if string(data) != `[{"id":"x"}]` {
		t.Errorf("unexpected content %s", data)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatalf("listing directory: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "plans.json" {
		t.Errorf("expected only plans.json to remain, got %v", entries)
	}
}
