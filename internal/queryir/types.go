package queryir

import "github.com/roach88/tdl/internal/ir"

// Query is a search over the definition catalog.
//
// This is a sealed interface - only types in this package implement it.
// The marker method prevents external implementations and lets backend
// compilers switch exhaustively.
type Query interface {
	queryNode()
}

// Predicate is a filter condition on stored definitions.
//
// This is a sealed interface - only types in this package implement it.
//
// Predicate types:
//   - Equals: definition column = literal
//   - HasField: the definition declares a matching field
//   - And: all predicates must be true
//   - Or: at least one predicate must be true
type Predicate interface {
	predicateNode()
}

// Columns a definition can be compared on with Equals.
const (
	ColumnName   = "name"   // type name
	ColumnID     = "id"     // content ID
	ColumnRunID  = "run_id" // run that recorded the definition
	ColumnSource = "source" // source of that run
)

// Columns lists the columns Equals may reference.
var Columns = []string{ColumnName, ColumnID, ColumnRunID, ColumnSource}

// Select returns stored definitions matching Filter, oldest run first and
// in source order within a run.
//
// Example:
//
//	Select{
//	  Filter: And{Predicates: []Predicate{
//	    HasField{Name: "x", Type: ptr("f64")},
//	    HasField{Name: "y"},
//	  }},
//	  Latest: true,
//	}
//
// finds the newest version of every type that has an x field of type f64
// and a y field of any type.
type Select struct {
	Filter Predicate // nil matches every definition
	Latest bool      // keep only the most recent definition of each name
	Limit  int       // 0 means no limit
}

func (Select) queryNode() {}

// Equals compares a definition column with a literal.
//
// Semantics:
//
//	<field> = <value>
//
// Field must be one of Columns and Value an ir.IRString.
type Equals struct {
	Field string
	Value ir.IRValue
}

func (Equals) predicateNode() {}

// HasField matches definitions declaring a field called Name.
//
// With Type set, the field must carry exactly that type. With Untyped set,
// the field must have no type. With neither, any field of that name
// matches. Setting both is invalid.
type HasField struct {
	Name    string
	Type    *string
	Untyped bool
}

func (HasField) predicateNode() {}

// And is a conjunction of predicates. Empty Predicates is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Or is a disjunction of predicates. Empty Predicates is always false.
type Or struct {
	Predicates []Predicate
}

func (Or) predicateNode() {}
