package database

import (
	"testing"
	"testing/fstest"
)

func TestPendingFilesOrderAndFiltering(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_login_logs.sql":     {Data: []byte("SELECT 1;")},
		"migrations/001_initial_schema.sql": {Data: []byte("SELECT 1;")},
		"migrations/999_reset_all.sql":      {Data: []byte("DROP TABLE users;")},
		"migrations/README.md":              {Data: []byte("notes")},
	}

	files, err := PendingFiles(fsys, "migrations", map[string]bool{})
	if err != nil {
		t.Fatalf("PendingFiles failed: %v", err)
	}
	if len(files) != 2 || files[0] != "001_initial_schema.sql" || files[1] != "002_login_logs.sql" {
		t.Errorf("unexpected pending files %v", files)
	}

	files, err = PendingFiles(fsys, "migrations", map[string]bool{"001_initial_schema.sql": true})
	if err != nil {
		t.Fatalf("PendingFiles failed: %v", err)
	}
	if len(files) != 1 || files[0] != "002_login_logs.sql" {
		t.Errorf("expected only the unapplied migration, got %v", files)
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	files, err := PendingFiles(migrationsFS, "migrations", nil)
	if err != nil {
		t.Fatalf("PendingFiles failed: %v", err)
	}
	if len(files) == 0 || files[0] != "001_initial_schema.sql" {
		t.Errorf("expected embedded schema migration first, got %v", files)
	}
}
