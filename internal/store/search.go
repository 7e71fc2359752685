package store

import (
	"context"
	"fmt"

	"github.com/roach88/tdl/internal/queryir"
	"github.com/roach88/tdl/internal/querysql"
)

// Search returns the stored definitions matching q, oldest run first.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) Search(ctx context.Context, q queryir.Query) ([]StoredTypeDef, error) {
	query, params, err := querysql.NewSQLCompiler().Compile(q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	s.logger.Debug("catalog search", "sql", query, "params", len(params))

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	defs := []StoredTypeDef{}
	for rows.Next() {
		def, err := scanTypeDef(rows)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search: iterate: %w", err)
	}
	return defs, nil
}
