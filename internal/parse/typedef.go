package parse

import "github.com/roach88/tdl/internal/ir"

var fieldList = CommaList[ir.Field](FieldRule)

// FieldList parses the body of a definition: a comma-separated list of
// fields. Like CommaList it never fails.
func FieldList(c Cursor) (Cursor, []ir.Field, error) {
	return fieldList(c)
}

// ParseFieldList parses a field list from text and returns the fields with
// the remaining input.
func ParseFieldList(text string) ([]ir.Field, string) {
	fields, rest, _ := Run[[]ir.Field](FieldList, text)
	return fields, rest
}

// TypeDefRule matches one `type Name { fields }` declaration followed by any
// whitespace.
//
// It is all-or-nothing: if the keyword, the name or either brace is missing
// it returns the cursor it was given and a *SyntaxError naming the missing
// piece.
func TypeDefRule(c Cursor) (Cursor, ir.TypeDef, error) {
	next, ok := literal(c, "type")
	if !ok {
		return fail[ir.TypeDef](c, RuleKeyword)
	}
	next = Space(next)

	next, name, err := Ident(next)
	if err != nil {
		return c, ir.TypeDef{}, err
	}

	if next, ok = literal(next, "{"); !ok {
		return fail[ir.TypeDef](c, RuleOpenBrace)
	}

	next, fields, _ := FieldList(next)

	if next, ok = literal(next, "}"); !ok {
		return fail[ir.TypeDef](c, RuleCloseBrace)
	}

	return LineSpace(next), ir.TypeDef{Name: name, Fields: fields}, nil
}

// ParseTypeDef parses one type definition from the start of text and
// returns it with the remaining input.
func ParseTypeDef(text string) (ir.TypeDef, string, error) {
	return Run[ir.TypeDef](TypeDefRule, text)
}
