package parse

import "strings"

// Ident matches an identifier surrounded by optional same-line whitespace
// and returns the identifier alone.
//
// The first character must be an ASCII letter or underscore; the rest may be
// letters, digits or underscores. If the first character does not qualify,
// Ident fails without consuming the leading whitespace.
func Ident(c Cursor) (Cursor, string, error) {
	start := Space(c)
	rest := start.Rest()
	if len(rest) == 0 || !isIdentStart(rest[0]) {
		return fail[string](c, RuleIdent)
	}
	n := 1
	for n < len(rest) && isIdentPart(rest[n]) {
		n++
	}
	// Clone so the result does not pin the caller's buffer.
	name := strings.Clone(rest[:n])
	return Space(start.advance(n)), name, nil
}

// ParseIdent parses a single identifier from text and returns it with the
// remaining input.
func ParseIdent(text string) (string, string, error) {
	return Run[string](Ident, text)
}

func isIdentStart(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || ('0' <= b && b <= '9')
}
