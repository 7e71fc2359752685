package parse

import "github.com/roach88/tdl/internal/ir"

// FieldRule matches `name` or `name: type`.
//
// The colon must follow the name's trailing same-line whitespace directly.
// When it is absent the field is untyped and nothing past the name is
// consumed. When it is present but no type identifier follows, the whole
// field fails and the cursor is left where it started.
func FieldRule(c Cursor) (Cursor, ir.Field, error) {
	next, name, err := Ident(c)
	if err != nil {
		return c, ir.Field{}, err
	}

	afterColon, ok := literal(next, ":")
	if !ok {
		return next, ir.UntypedField(name), nil
	}

	next, typ, err := Ident(afterColon)
	if err != nil {
		return fail[ir.Field](c, RuleFieldType)
	}
	return next, ir.TypedField(name, typ), nil
}
