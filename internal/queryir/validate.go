package queryir

import (
	"fmt"
	"slices"

	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/parse"
)

// ValidationResult lists the problems found in a query.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	// Problems describes each invalid node, in traversal order.
	Problems []string
}

// Validate checks a query before compilation.
//
// Rules:
//  1. Equals references a known column and compares it with a string
//  2. HasField names an identifier and does not set both Type and Untyped
//  3. HasField.Type, when set, is an identifier
//  4. Limit is not negative
//
// Validate is a pure function with no side effects.
func Validate(query Query) ValidationResult {
	v := &validator{
		problems: []string{},
	}
	v.validateQuery(query)

	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

// Err returns the first problem as an error, or nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	if len(r.Problems) == 1 {
		return fmt.Errorf("invalid query: %s", r.Problems[0])
	}
	return fmt.Errorf("invalid query: %s (and %d more)", r.Problems[0], len(r.Problems)-1)
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	if q == nil {
		v.addProblem("nil query")
		return
	}

	switch query := q.(type) {
	case Select:
		v.validateSelect(query)
	case *Select:
		v.validateSelect(*query)
	default:
		v.addProblem("unknown query type: %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	if sel.Limit < 0 {
		v.addProblem("limit must not be negative, got %d", sel.Limit)
	}
	if sel.Filter != nil {
		v.validatePredicate(sel.Filter)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	if p == nil {
		return
	}

	switch pred := p.(type) {
	case Equals:
		v.validateEquals(pred)
	case *Equals:
		v.validateEquals(*pred)
	case HasField:
		v.validateHasField(pred)
	case *HasField:
		v.validateHasField(*pred)
	case And:
		v.validateAll(pred.Predicates)
	case *And:
		v.validateAll(pred.Predicates)
	case Or:
		v.validateAll(pred.Predicates)
	case *Or:
		v.validateAll(pred.Predicates)
	default:
		v.addProblem("unknown predicate type: %T", p)
	}
}

func (v *validator) validateEquals(eq Equals) {
	if !slices.Contains(Columns, eq.Field) {
		v.addProblem("unknown column %q: must be one of %v", eq.Field, Columns)
	}
	if _, ok := eq.Value.(ir.IRString); !ok {
		v.addProblem("column %q compared to %T: only strings are stored", eq.Field, eq.Value)
	}
}

func (v *validator) validateHasField(hf HasField) {
	if !isIdent(hf.Name) {
		v.addProblem("field name %q is not an identifier", hf.Name)
	}
	if hf.Type != nil && hf.Untyped {
		v.addProblem("field %s: Type and Untyped are mutually exclusive", hf.Name)
	}
	if hf.Type != nil && !isIdent(*hf.Type) {
		v.addProblem("field %s: type %q is not an identifier", hf.Name, *hf.Type)
	}
}

func (v *validator) validateAll(preds []Predicate) {
	for _, p := range preds {
		v.validatePredicate(p)
	}
}

func isIdent(s string) bool {
	ident, rest, err := parse.ParseIdent(s)
	return err == nil && rest == "" && ident == s
}
