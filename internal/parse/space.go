package parse

// Space consumes spaces and tabs. It always succeeds.
func Space(c Cursor) Cursor {
	return skipWhile(c, isSpace)
}

// LineSpace consumes spaces, tabs, newlines and carriage returns.
// It always succeeds.
func LineSpace(c Cursor) Cursor {
	return skipWhile(c, isLineSpace)
}

// SkipSpace returns text with leading spaces and tabs removed.
func SkipSpace(text string) string {
	return Space(NewCursor(text)).Rest()
}

// SkipLineSpace returns text with leading spaces, tabs, newlines and
// carriage returns removed.
func SkipLineSpace(text string) string {
	return LineSpace(NewCursor(text)).Rest()
}

func skipWhile(c Cursor, match func(byte) bool) Cursor {
	n := 0
	rest := c.Rest()
	for n < len(rest) && match(rest[n]) {
		n++
	}
	return c.advance(n)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isLineSpace(b byte) bool {
	return isSpace(b) || b == '\n' || b == '\r'
}

// literal consumes lit if the cursor starts with it.
func literal(c Cursor, lit string) (Cursor, bool) {
	rest := c.Rest()
	if len(rest) < len(lit) || rest[:len(lit)] != lit {
		return c, false
	}
	return c.advance(len(lit)), true
}
