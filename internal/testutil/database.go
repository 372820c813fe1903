package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/martellev/mealplanner/internal/database"
	"github.com/martellev/mealplanner/internal/repository"
	"github.com/martellev/mealplanner/internal/services"
	"github.com/martellev/mealplanner/internal/storage"
)

// NewTestDatabase returns a migrated in-memory database closed at test end.
func NewTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}

// Fixture is a bootstrapped planner over SQLite documents, file images in a
// temporary directory and the SQLite activity log.
type Fixture struct {
	Planner  *services.Planner
	Activity *repository.SQLiteActivityRepository
	ImageDir string
}

// NewTestPlanner builds a Fixture in UTC. The catalog starts with the seed
// meals.
func NewTestPlanner(t *testing.T) Fixture {
	t.Helper()

	db := NewTestDatabase(t)
	imageDir := filepath.Join(t.TempDir(), "images")

	gateway := storage.NewGateway(repository.NewDocumentRepository(db), storage.NewFileImageStore(imageDir))
	activity := repository.NewActivityRepository(db)
	planner := services.NewPlanner(gateway, activity, time.UTC)
	planner.Bootstrap(context.Background())

	return Fixture{Planner: planner, Activity: activity, ImageDir: imageDir}
}
