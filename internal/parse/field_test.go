package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tdl/internal/ir"
)

func TestFieldRule(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ir.Field
		rest  string
	}{
		{"untyped", "a", ir.UntypedField("a"), ""},
		{"typed", "a: int", ir.TypedField("a", "int"), ""},
		{"typed no space", "a:int", ir.TypedField("a", "int"), ""},
		{"space before colon", "a : int", ir.TypedField("a", "int"), ""},
		{"untyped before comma", "a, b", ir.UntypedField("a"), ", b"},
		{"typed before comma", "x: f64 , y", ir.TypedField("x", "f64"), ", y"},
		{"colon on next line", "a\n: int", ir.UntypedField("a"), "\n: int"},
		{"untyped before brace", "a }", ir.UntypedField("a"), "}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := Run[ir.Field](FieldRule, tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestFieldRuleFailsOnMissingName(t *testing.T) {
	c := NewCursor(": int")
	next, _, err := FieldRule(c)

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, RuleIdent, syntaxErr.Rule)
	assert.Equal(t, 0, next.Offset())
}

func TestFieldRuleColonWithoutTypeFailsWholeField(t *testing.T) {
	for _, input := range []string{"a:", "a: }", "a: 9", "a:,"} {
		t.Run(input, func(t *testing.T) {
			c := NewCursor(input)
			next, _, err := FieldRule(c)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, RuleFieldType, syntaxErr.Rule)
			assert.Equal(t, 0, next.Offset(), "failed field must not consume the name")
		})
	}
}
