// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/desertthunder/panelstore/internal/dialect"
	"github.com/desertthunder/panelstore/internal/migrations"
	"github.com/desertthunder/panelstore/internal/shared"
)

// NewTestClient opens a fresh sqlite database in a temp directory with every migration applied.
//
// A file backed database is used so the pool can hold more than one connection.
func NewTestClient(t *testing.T) *shared.Client {
	t.Helper()

	client := NewEmptyClient(t)
	if _, err := migrations.Up(context.Background(), client, nil); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return client
}

// NewEmptyClient opens a fresh sqlite database without running migrations.
func NewEmptyClient(t *testing.T) *shared.Client {
	t.Helper()

	cfg := shared.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")}
	client, err := shared.NewDatabase(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// NewMockClient returns a client for the named dialect backed by sqlmock.
//
// Expectations are regular expressions; wrap literal SQL in [regexp.QuoteMeta].
func NewMockClient(t *testing.T, name string) (*shared.Client, sqlmock.Sqlmock) {
	t.Helper()

	d, err := dialect.Get(name)
	if err != nil {
		t.Fatalf("failed to get dialect: %v", err)
	}

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		db.Close()
	})
	return shared.NewClient(db, d), mock
}

// MustExec runs a statement against the client, failing the test on error.
func MustExec(t *testing.T, db *sql.DB, stmt string, args ...any) {
	t.Helper()
	if _, err := db.Exec(stmt, args...); err != nil {
		t.Fatalf("failed to execute %q: %v", stmt, err)
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
