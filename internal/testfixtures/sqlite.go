package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/proxiglass/planning/internal/persistence"
	"github.com/proxiglass/planning/internal/persistence/sqlite"
)

// SQLiteHarness exposes repositories backed by a temporary SQLite file for
// integration-style persistence tests.
type SQLiteHarness struct {
	Appointments persistence.AppointmentRepository
	Resources    persistence.ResourceRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness opens and migrates a storage instance in a per-test
// temporary directory. Cleanup is registered with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "planning.db")

	storage, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Appointments: storage,
		Resources:    storage,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
