package database

import (
	"database/sql"
	"reflect"
	"testing"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
	if err != nil {
		t.Fatalf("looking up table %s: %v", table, err)
	}
	return count == 1
}

func TestLoadMigrations_PairsUpAndDown(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("loading migrations: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	for index, step := range migrations {
		if step.version != index+1 {
			t.Errorf("expected version %d at index %d, got %d", index+1, index, step.version)
		}
		if step.up == "" || step.down == "" {
			t.Errorf("migration %s: expected both up and down scripts", step.name)
		}
	}
}

func TestMigrate_AppliesEveryVersion(t *testing.T) {
	db := openMemory(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	versions, err := AppliedVersions(db)
	if err != nil {
		t.Fatalf("listing versions: %v", err)
	}
	if !reflect.DeepEqual(versions, []int{1, 2}) {
		t.Errorf("expected versions [1 2], got %v", versions)
	}
	for _, table := range []string{"documents", "activity_log"} {
		if !tableExists(t, db, table) {
			t.Errorf("table '%s' not found", table)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openMemory(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("first migration: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("second migration should not fail: %v", err)
	}

	versions, _ := AppliedVersions(db)
	if len(versions) != 2 {
		t.Errorf("expected 2 migrations after double run, got %v", versions)
	}
}

func TestRollback_RevertsNewestFirst(t *testing.T) {
	db := openMemory(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	if err := Rollback(db, 1); err != nil {
		t.Fatalf("rolling back one step: %v", err)
	}
	if tableExists(t, db, "activity_log") {
		t.Error("expected activity_log dropped")
	}
	if !tableExists(t, db, "documents") {
		t.Error("expected documents kept")
	}
	if versions, _ := AppliedVersions(db); !reflect.DeepEqual(versions, []int{1}) {
		t.Errorf("expected versions [1], got %v", versions)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("reapplying migrations: %v", err)
	}
	if !tableExists(t, db, "activity_log") {
		t.Error("expected activity_log restored")
	}
}

func TestRollback_BeyondAppliedStopsAtEmpty(t *testing.T) {
	db := openMemory(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	if err := Rollback(db, 10); err != nil {
		t.Fatalf("rolling back everything: %v", err)
	}
	if versions, _ := AppliedVersions(db); len(versions) != 0 {
		t.Errorf("expected nothing applied, got %v", versions)
	}
	if tableExists(t, db, "documents") {
		t.Error("expected documents dropped")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		base    string
		want    int
		wantErr bool
	}{
		{base: "001_create_documents", want: 1},
		{base: "012_add_index", want: 12},
		{base: "create_documents", wantErr: true},
		{base: "000_empty", wantErr: true},
	}

	for _, test := range tests {
		got, err := parseVersion(test.base)
		if (err != nil) != test.wantErr {
			t.Errorf("%s: unexpected error state %v", test.base, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: expected %d, got %d", test.base, test.want, got)
		}
	}
}
