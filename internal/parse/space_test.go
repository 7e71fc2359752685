package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpaceSkipsOnlySameLineWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abc", "abc"},
		{"  abc", "abc"},
		{"\t \tabc", "abc"},
		{" \nabc", "\nabc"},
		{" \r\nabc", "\r\nabc"},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SkipSpace(tt.input), "input %q", tt.input)
	}
}

func TestLineSpaceSkipsNewlines(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abc", "abc"},
		{" \t\n\r abc", "abc"},
		{"\r\n\r\n}", "}"},
		{"\n\n", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SkipLineSpace(tt.input), "input %q", tt.input)
	}
}

func TestSpaceAdvancesCursor(t *testing.T) {
	c := NewCursor("  x")

	next := Space(c)

	assert.Equal(t, 0, c.Offset(), "original cursor is immutable")
	assert.Equal(t, 2, next.Offset())
	assert.Equal(t, "x", next.Rest())
	assert.Equal(t, "  x", next.Source())
}

func TestCursorAtEnd(t *testing.T) {
	assert.True(t, NewCursor("").AtEnd())
	assert.False(t, NewCursor(" ").AtEnd())
	assert.True(t, Space(NewCursor(" \t")).AtEnd())
}
