package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/queryir"
	"github.com/roach88/tdl/internal/testutil"
)

func strPtr(s string) *string { return &s }

// seedSearchStore records two runs:
//
//	run-1 (a.tdl): Point { x: f64, y: f64 }, Tag { label }
//	run-2 (b.tdl): Point { x: i64, y: i64, z: i64 }, Line { from: Point, to: Point }
func seedSearchStore(t *testing.T) *Store {
	t.Helper()
	s := createTestStore(t, "run-1", "run-2")
	ctx := context.Background()

	_, err := s.RecordRun(ctx, "a.tdl", []ir.TypeDef{
		pointDef(),
		{Name: "Tag", Fields: []ir.Field{ir.UntypedField("label")}},
	})
	require.NoError(t, err)

	_, err = s.RecordRun(ctx, "b.tdl", []ir.TypeDef{
		{Name: "Point", Fields: []ir.Field{
			ir.TypedField("x", "i64"), ir.TypedField("y", "i64"), ir.TypedField("z", "i64"),
		}},
		{Name: "Line", Fields: []ir.Field{ir.TypedField("from", "Point"), ir.TypedField("to", "Point")}},
	})
	require.NoError(t, err)
	return s
}

func names(defs []StoredTypeDef) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.RunID + ":" + d.Def.Name
	}
	return out
}

func TestSearch(t *testing.T) {
	s := seedSearchStore(t)

	tests := []struct {
		name  string
		query queryir.Select
		want  []string
	}{
		{
			name:  "everything",
			query: queryir.Select{},
			want:  []string{"run-1:Point", "run-1:Tag", "run-2:Point", "run-2:Line"},
		},
		{
			name:  "latest only",
			query: queryir.Select{Latest: true},
			want:  []string{"run-1:Tag", "run-2:Point", "run-2:Line"},
		},
		{
			name:  "by name",
			query: queryir.Select{Filter: queryir.Equals{Field: queryir.ColumnName, Value: ir.IRString("Point")}},
			want:  []string{"run-1:Point", "run-2:Point"},
		},
		{
			name:  "by source",
			query: queryir.Select{Filter: queryir.Equals{Field: queryir.ColumnSource, Value: ir.IRString("a.tdl")}},
			want:  []string{"run-1:Point", "run-1:Tag"},
		},
		{
			name:  "field of any type",
			query: queryir.Select{Filter: queryir.HasField{Name: "x"}},
			want:  []string{"run-1:Point", "run-2:Point"},
		},
		{
			name:  "field with type",
			query: queryir.Select{Filter: queryir.HasField{Name: "x", Type: strPtr("f64")}},
			want:  []string{"run-1:Point"},
		},
		{
			name:  "untyped field",
			query: queryir.Select{Filter: queryir.HasField{Name: "label", Untyped: true}},
			want:  []string{"run-1:Tag"},
		},
		{
			name:  "typed filter excludes untyped field",
			query: queryir.Select{Filter: queryir.HasField{Name: "label", Type: strPtr("string")}},
			want:  []string{},
		},
		{
			name: "and",
			query: queryir.Select{Filter: queryir.And{Predicates: []queryir.Predicate{
				queryir.HasField{Name: "x"},
				queryir.HasField{Name: "z"},
			}}},
			want: []string{"run-2:Point"},
		},
		{
			name: "or",
			query: queryir.Select{Filter: &queryir.Or{Predicates: []queryir.Predicate{
				queryir.HasField{Name: "label"},
				queryir.HasField{Name: "from", Type: strPtr("Point")},
			}}},
			want: []string{"run-1:Tag", "run-2:Line"},
		},
		{
			name:  "limit",
			query: queryir.Select{Limit: 2},
			want:  []string{"run-1:Point", "run-1:Tag"},
		},
		{
			name:  "latest with field filter",
			query: queryir.Select{Filter: queryir.HasField{Name: "x", Type: strPtr("f64")}, Latest: true},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSearch_DecodesDefinitions(t *testing.T) {
	s := seedSearchStore(t)

	got, err := s.Search(context.Background(), &queryir.Select{
		Filter: queryir.Equals{Field: queryir.ColumnName, Value: ir.IRString("Tag")},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Seq)
	assert.Equal(t, ir.MustTypeDefID(got[0].Def), got[0].ID)
	assert.False(t, got[0].Def.Fields[0].HasType())
}

func TestSearch_InvalidQuery(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Search(context.Background(), queryir.Select{
		Filter: queryir.Equals{Field: "body", Value: ir.IRString("x")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")
}

func TestWriteTypeDef_FirstWriteOwnsFields(t *testing.T) {
	s := createTestStore(t, "run-1")
	ctx := context.Background()

	_, err := s.RecordRun(ctx, "a.tdl", []ir.TypeDef{{Name: "P", Fields: []ir.Field{ir.UntypedField("a")}}})
	require.NoError(t, err)

	// Same position, more fields: ignored entirely.
	err = s.WriteTypeDef(ctx, "run-1", 1, ir.TypeDef{Name: "P", Fields: []ir.Field{
		ir.UntypedField("a"), ir.UntypedField("b"),
	}})
	require.NoError(t, err)

	got, err := s.Search(ctx, queryir.Select{Filter: queryir.HasField{Name: "b"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMigrateToV2_BackfillsFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	ctx := context.Background()

	s, err := Open(path, WithIDGenerator(testutil.NewFixedIDGenerator("run-1")))
	require.NoError(t, err)
	_, err = s.RecordRun(ctx, "a.tdl", []ir.TypeDef{pointDef()})
	require.NoError(t, err)

	// Roll back to a v1 catalog: no field rows.
	_, err = s.db.ExecContext(ctx, "DELETE FROM fields")
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, "PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	version, err := s.schemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)

	got, err := s.Search(ctx, queryir.Select{Filter: queryir.HasField{Name: "y", Type: strPtr("f64")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1:Point"}, names(got))
}
