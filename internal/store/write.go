package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/tdl/internal/ir"
)

// execer is satisfied by *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// RecordRun stores defs as a new run with the next run sequence number.
// The run and all of its definitions are written in one transaction.
func (s *Store) RecordRun(ctx context.Context, source string, defs []ir.TypeDef) (Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}

	run := Run{
		ID:     s.ids.Generate(),
		Source: source,
		Seq:    seq,
		Count:  len(defs),
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, seq) VALUES (?, ?, ?)`,
		run.ID, run.Source, run.Seq,
	); err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	for i, def := range defs {
		if err := writeTypeDef(ctx, tx, run.ID, int64(i+1), def); err != nil {
			return Run{}, fmt.Errorf("record run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}

	s.logger.Debug("run recorded",
		"run_id", run.ID,
		"seq", run.Seq,
		"source", run.Source,
		"definitions", run.Count,
	)
	return run, nil
}

// WriteTypeDef stores one definition at position seq of an existing run.
// Uses ON CONFLICT DO NOTHING for idempotency - rewriting the same position
// is silently ignored.
func (s *Store) WriteTypeDef(ctx context.Context, runID string, seq int64, def ir.TypeDef) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write typedef: %w", err)
	}
	defer tx.Rollback()

	if err := writeTypeDef(ctx, tx, runID, seq, def); err != nil {
		return fmt.Errorf("write typedef: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write typedef: commit: %w", err)
	}
	return nil
}

func writeTypeDef(ctx context.Context, ex execer, runID string, seq int64, def ir.TypeDef) error {
	id, err := ir.TypeDefID(def)
	if err != nil {
		return err
	}
	body, err := ir.MarshalCanonical(def)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", def.Name, err)
	}

	res, err := ex.ExecContext(ctx, `
		INSERT INTO typedefs (run_id, seq, id, name, body)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO NOTHING
	`, runID, seq, id, def.Name, string(body))
	if err != nil {
		return fmt.Errorf("insert %s: %w", def.Name, err)
	}
	// Position already taken: the first write owns its fields too.
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return err
	}

	for i, f := range def.Fields {
		var typ sql.NullString
		if f.HasType() {
			typ = sql.NullString{String: f.TypeName(), Valid: true}
		}
		if _, err := ex.ExecContext(ctx, `
			INSERT INTO fields (run_id, def_seq, pos, name, type)
			VALUES (?, ?, ?, ?, ?)
		`, runID, seq, i+1, f.Name, typ); err != nil {
			return fmt.Errorf("insert %s.%s: %w", def.Name, f.Name, err)
		}
	}
	return nil
}
