package parse

// CommaList builds a parser for a comma-separated list of inner elements.
//
// The list may span lines, may be empty, and may end with a trailing comma.
// It never fails: the first element that does not match ends the list, and
// the failed attempt consumes nothing. Whitespace before that attempt, and
// after the list, is consumed.
func CommaList[V any](inner Parser[V]) Parser[[]V] {
	return func(c Cursor) (Cursor, []V, error) {
		items := make([]V, 0)
		for {
			c = LineSpace(c)
			next, item, err := inner(c)
			if err != nil {
				break
			}
			items = append(items, item)
			c = LineSpace(next)

			var ok bool
			if c, ok = literal(c, ","); !ok {
				break
			}
		}
		return LineSpace(c), items, nil
	}
}
