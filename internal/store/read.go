package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/tdl/internal/ir"
)

// ErrNotFound is returned when a lookup matches no stored definition.
var ErrNotFound = errors.New("not found")

// Run is one recorded parse run.
type Run struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Seq    int64  `json:"seq"`
	Count  int    `json:"count"`
}

// StoredTypeDef is a definition as recorded in the catalog.
type StoredTypeDef struct {
	ID    string     `json:"id"`
	RunID string     `json:"run_id"`
	Seq   int64      `json:"seq"`
	Def   ir.TypeDef `json:"def"`
}

// ListRuns returns every run ordered by seq.
// Returns an empty slice (not nil) when the catalog is empty.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.source, r.seq, COUNT(t.seq)
		FROM runs r
		LEFT JOIN typedefs t ON t.run_id = r.id
		GROUP BY r.id, r.source, r.seq
		ORDER BY r.seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Source, &run.Seq, &run.Count); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns the definitions of a run in source order.
// Returns an empty slice (not nil) if the run has no definitions.
func (s *Store) ReadRun(ctx context.Context, runID string) ([]StoredTypeDef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, seq, body
		FROM typedefs
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query typedefs: %w", err)
	}
	defer rows.Close()

	defs := []StoredTypeDef{}
	for rows.Next() {
		def, err := scanTypeDef(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate typedefs: %w", err)
	}
	return defs, nil
}

// LookupTypeDef returns the most recently recorded definition with the
// given name: the latest run wins, and within a run the last declaration.
// Returns ErrNotFound if no run recorded that name.
func (s *Store) LookupTypeDef(ctx context.Context, name string) (StoredTypeDef, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.run_id, t.seq, t.body
		FROM typedefs t
		JOIN runs r ON r.id = t.run_id
		WHERE t.name = ?
		ORDER BY r.seq DESC, t.seq DESC
		LIMIT 1
	`, name)

	def, err := scanTypeDef(row)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredTypeDef{}, fmt.Errorf("typedef %q: %w", name, ErrNotFound)
	}
	return def, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTypeDef(row scanner) (StoredTypeDef, error) {
	var (
		def  StoredTypeDef
		body string
	)
	if err := row.Scan(&def.ID, &def.RunID, &def.Seq, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return def, err
		}
		return def, fmt.Errorf("scan typedef: %w", err)
	}
	if err := json.Unmarshal([]byte(body), &def.Def); err != nil {
		return def, fmt.Errorf("unmarshal typedef %s: %w", def.ID, err)
	}
	if def.Def.Fields == nil {
		def.Def.Fields = []ir.Field{}
	}
	return def, nil
}
