package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hmtran/storefront/internal/seed"
)

// newTestStore opens a fresh database in a temp dir and seeds the default
// catalog. Closed automatically at test end.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Seed(context.Background(), seed.Default()); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	return s
}
