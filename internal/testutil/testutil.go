// Package testutil provides shared test helpers for setting up databases.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/mclindenhomes/website/internal/store"
)

// TestStore creates a temporary SQLite-backed store that is
// automatically cleaned up.
func TestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.db")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
