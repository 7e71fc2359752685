package parse

import "github.com/roach88/tdl/internal/ir"

// AllRule applies TypeDefRule repeatedly, after skipping leading
// whitespace, until the input is exhausted.
//
// It returns every definition parsed before the first failure. The error is
// nil only when the whole input was consumed; otherwise the returned cursor
// points at the declaration that failed.
func AllRule(c Cursor) (Cursor, []ir.TypeDef, error) {
	defs := make([]ir.TypeDef, 0)
	c = LineSpace(c)
	for !c.AtEnd() {
		next, def, err := TypeDefRule(c)
		if err != nil {
			return c, defs, err
		}
		defs = append(defs, def)
		c = next
	}
	return c, defs, nil
}

// All parses every type definition in text.
func All(text string) ([]ir.TypeDef, string, error) {
	return Run[[]ir.TypeDef](AllRule, text)
}
