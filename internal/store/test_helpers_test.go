package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/testutil"
)

// createTestStore creates a new temp-dir store with predictable run IDs.
func createTestStore(t *testing.T, runIDs ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewFixedIDGenerator(runIDs...)))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func pointDef() ir.TypeDef {
	return ir.TypeDef{
		Name:   "Point",
		Fields: []ir.Field{ir.TypedField("x", "f64"), ir.TypedField("y", "f64")},
	}
}
