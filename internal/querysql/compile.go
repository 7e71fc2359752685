package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/queryir"
)

// SQLCompiler compiles catalog queries to parameterized SQLite.
//
// Every query is ordered by run sequence and then position within the run,
// so results are deterministic. Values are always bound as parameters.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// columnSQL maps query columns to catalog columns. The typedefs table is
// aliased t and runs is aliased r.
var columnSQL = map[string]string{
	queryir.ColumnName:   "t.name",
	queryir.ColumnID:     "t.id",
	queryir.ColumnRunID:  "t.run_id",
	queryir.ColumnSource: "r.source",
}

// Compile converts a query to SQL selecting (id, run_id, seq, body) from
// the typedefs table. Returns (sql, params, error).
//
// The query is validated first; an invalid query is an error.
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	if q == nil {
		return "", nil, fmt.Errorf("cannot compile nil query")
	}
	if err := queryir.Validate(q).Err(); err != nil {
		return "", nil, err
	}

	switch query := q.(type) {
	case queryir.Select:
		return c.compileSelect(query)
	case *queryir.Select:
		return c.compileSelect(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func (c *SQLCompiler) compileSelect(q queryir.Select) (string, []any, error) {
	var (
		where  []string
		params []any
	)

	if q.Filter != nil {
		filterSQL, filterParams, err := c.compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		where = append(where, filterSQL)
		params = append(params, filterParams...)
	}

	if q.Latest {
		where = append(where, latestOnly)
	}

	var b strings.Builder
	b.WriteString("SELECT t.id, t.run_id, t.seq, t.body FROM typedefs t JOIN runs r ON r.id = t.run_id")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY r.seq ASC, t.seq ASC")
	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		params = append(params, q.Limit)
	}
	return b.String(), params, nil
}

// latestOnly drops a definition when a later run, or a later position in
// the same run, recorded the same name.
const latestOnly = `NOT EXISTS (SELECT 1 FROM typedefs t2 JOIN runs r2 ON r2.id = t2.run_id ` +
	`WHERE t2.name = t.name AND (r2.seq > r.seq OR (r2.seq = r.seq AND t2.seq > t.seq)))`

// compilePredicate compiles a predicate to a WHERE clause fragment.
// Values are never interpolated.
func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	if p == nil {
		return "1 = 1", nil, nil
	}

	switch pred := p.(type) {
	case queryir.Equals:
		return c.compileEquals(pred)
	case *queryir.Equals:
		return c.compileEquals(*pred)
	case queryir.HasField:
		return c.compileHasField(pred)
	case *queryir.HasField:
		return c.compileHasField(*pred)
	case queryir.And:
		return c.compileJunction(pred.Predicates, " AND ", "1 = 1")
	case *queryir.And:
		return c.compileJunction(pred.Predicates, " AND ", "1 = 1")
	case queryir.Or:
		return c.compileJunction(pred.Predicates, " OR ", "1 = 0")
	case *queryir.Or:
		return c.compileJunction(pred.Predicates, " OR ", "1 = 0")
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func (c *SQLCompiler) compileEquals(eq queryir.Equals) (string, []any, error) {
	column, ok := columnSQL[eq.Field]
	if !ok {
		return "", nil, fmt.Errorf("unknown column %q", eq.Field)
	}
	param, err := irValueToParam(eq.Value)
	if err != nil {
		return "", nil, fmt.Errorf("convert value: %w", err)
	}
	return column + " = ?", []any{param}, nil
}

func (c *SQLCompiler) compileHasField(hf queryir.HasField) (string, []any, error) {
	var b strings.Builder
	b.WriteString("EXISTS (SELECT 1 FROM fields f WHERE f.run_id = t.run_id AND f.def_seq = t.seq AND f.name = ?")
	params := []any{hf.Name}

	switch {
	case hf.Type != nil:
		b.WriteString(" AND f.type = ?")
		params = append(params, *hf.Type)
	case hf.Untyped:
		b.WriteString(" AND f.type IS NULL")
	}
	b.WriteString(")")
	return b.String(), params, nil
}

// compileJunction joins sub-predicates with op, parenthesized so nesting
// keeps its meaning. Empty input compiles to empty.
func (c *SQLCompiler) compileJunction(preds []queryir.Predicate, op, empty string) (string, []any, error) {
	if len(preds) == 0 {
		return empty, nil, nil
	}

	var (
		parts  []string
		params []any
	)
	for _, pred := range preds {
		sql, predParams, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, predParams...)
	}
	if len(parts) == 1 {
		return parts[0], params, nil
	}
	return "(" + strings.Join(parts, op) + ")", params, nil
}

// irValueToParam converts an ir.IRValue to a Go native type for a SQL
// parameter.
func irValueToParam(v ir.IRValue) (any, error) {
	switch val := v.(type) {
	case ir.IRString:
		return string(val), nil
	case ir.IRInt:
		return int64(val), nil
	case ir.IRBool:
		return bool(val), nil
	case ir.IRArray:
		return nil, fmt.Errorf("IRArray cannot be used as SQL parameter directly")
	case ir.IRObject:
		return nil, fmt.Errorf("IRObject cannot be used as SQL parameter directly")
	default:
		return nil, fmt.Errorf("unsupported IRValue type for SQL parameter: %T", v)
	}
}
