// Package parse implements the tdl type-definition grammar as a set of
// small composable parsers.
//
// # Grammar
//
//	type_def    := "type" IDENT "{" field_list "}"
//	field_list  := ( field ( "," field )* ","? )?
//	field       := IDENT ( ":" IDENT )?
//	IDENT       := ( letter | "_" ) ( letter | digit | "_" )*
//
// Spaces and tabs are insignificant around tokens within a line. Newlines and
// carriage returns are additionally insignificant around list elements and
// after the closing brace.
//
// # Parsers
//
// Every parser is a pure function from a Cursor to an advanced Cursor and a
// value. On failure a parser returns the cursor it was given, unchanged, and
// a *SyntaxError wrapping ErrNoMatch:
//
//	c := parse.NewCursor("type Point { x: f64, y: f64, }")
//	c, def, err := parse.TypeDefRule(c)
//	if errors.Is(err, parse.ErrNoMatch) {
//	    // c still points at the start of the input
//	}
//
// CommaList is the only combinator with a loop. It never fails: an element
// that does not match ends the list, which is what makes a trailing comma
// and an empty list well-formed.
//
// The top-level rule parses exactly one declaration. All applies it
// repeatedly to consume a whole file.
package parse
