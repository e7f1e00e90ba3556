package slot

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

// createTestSQLite opens a fresh database in a temp directory.
func createTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenSQLite_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpenSQLite_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := OpenSQLite(path)
		if err != nil {
			t.Fatalf("OpenSQLite() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("final OpenSQLite() failed: %v", err)
	}
	defer s.Close()

	var name string
	err = s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='slots'").Scan(&name)
	if err != nil {
		t.Errorf("slots table not found after idempotent opens: %v", err)
	}
}

func TestOpenSQLite_InvalidPath(t *testing.T) {
	_, err := OpenSQLite("/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestSQLite_CloseNilDB(t *testing.T) {
	s := &SQLite{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestSQLite_Pragmas(t *testing.T) {
	s := createTestSQLite(t)

	tests := []struct {
		name     string
		expected string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "2"}, // FULL = 2
		{"busy_timeout", "5000"},
		{"user_version", "1"},
	}
	for _, tt := range tests {
		if err := s.verifyPragma(tt.name, tt.expected); err != nil {
			t.Error(err)
		}
	}
}

func TestSQLite_RevisionCountsWrites(t *testing.T) {
	s := createTestSQLite(t)
	ctx := context.Background()

	rev, err := s.Revision(ctx, "k")
	if err != nil {
		t.Fatalf("Revision() failed: %v", err)
	}
	if rev != 0 {
		t.Errorf("revision of absent key = %d, want 0", rev)
	}

	for i := 0; i < 3; i++ {
		if err := s.Put(ctx, "k", "v"); err != nil {
			t.Fatalf("Put() failed: %v", err)
		}
	}

	rev, err = s.Revision(ctx, "k")
	if err != nil {
		t.Fatalf("Revision() failed: %v", err)
	}
	if rev != 3 {
		t.Errorf("revision = %d, want 3", rev)
	}
}

func TestSQLite_MigratesV0Database(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	// Build a v0 database by hand: no revision column, user_version 0.
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE slots (
			key        TEXT PRIMARY KEY COLLATE BINARY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT ''
		);
		INSERT INTO slots (key, value) VALUES ('beloved-data', 'legacy-blob');
	`)
	if err != nil {
		t.Fatalf("create v0 schema failed: %v", err)
	}
	db.Close()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() on v0 database failed: %v", err)
	}
	defer s.Close()

	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}

	ctx := context.Background()
	value, ok, err := s.Get(ctx, "beloved-data")
	if err != nil || !ok || value != "legacy-blob" {
		t.Fatalf("Get() = %q, %v, %v; want legacy-blob preserved", value, ok, err)
	}
	if err := s.Put(ctx, "beloved-data", "new-blob"); err != nil {
		t.Fatalf("Put() after migration failed: %v", err)
	}
	rev, err := s.Revision(ctx, "beloved-data")
	if err != nil {
		t.Fatalf("Revision() failed: %v", err)
	}
	if rev != 1 {
		t.Errorf("revision after first post-migration write = %d, want 1", rev)
	}
}

func TestSQLite_PutAfterCloseIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	s.Close()

	err = s.Put(context.Background(), "k", "v")
	if !IsPersistenceError(err) {
		t.Fatalf("Put() after Close() = %v, want *PersistenceError", err)
	}
	if IsQuotaExceeded(err) {
		t.Error("closed database should be unavailable, not quota-exceeded")
	}
}
