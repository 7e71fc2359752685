package parse

// Cursor is an immutable view of the unconsumed suffix of an input text.
// Advancing a cursor returns a new value; the source is never modified.
type Cursor struct {
	src string
	off int
}

// NewCursor returns a cursor positioned at the start of src.
func NewCursor(src string) Cursor {
	return Cursor{src: src}
}

// Rest returns the unconsumed text.
func (c Cursor) Rest() string {
	return c.src[c.off:]
}

// Offset returns the number of bytes consumed from the source.
func (c Cursor) Offset() int {
	return c.off
}

// Source returns the full text the cursor was created from.
func (c Cursor) Source() string {
	return c.src
}

// AtEnd reports whether the whole source has been consumed.
func (c Cursor) AtEnd() bool {
	return c.off >= len(c.src)
}

func (c Cursor) peek() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.src[c.off], true
}

func (c Cursor) advance(n int) Cursor {
	return Cursor{src: c.src, off: c.off + n}
}

// Parser is a parsing rule producing a value of type V.
// On failure it must return its input cursor unchanged.
type Parser[V any] func(Cursor) (Cursor, V, error)

// Run applies p to text and returns the value and the unconsumed remainder.
func Run[V any](p Parser[V], text string) (V, string, error) {
	c, v, err := p(NewCursor(text))
	return v, c.Rest(), err
}
