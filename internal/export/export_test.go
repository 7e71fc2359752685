package export

import (
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/parse"
)

func mustParseAll(t *testing.T, src string) []ir.TypeDef {
	t.Helper()
	defs, rest, err := parse.All(src)
	require.NoError(t, err)
	require.Empty(t, rest)
	return defs
}

func TestCUEOutputParses(t *testing.T) {
	defs := mustParseAll(t, "type Point { x: f64, y: f64, }\ntype Tag { _id, label }")

	out, err := CUE(defs)
	require.NoError(t, err)

	_, err = parser.ParseFile("export.cue", out)
	require.NoError(t, err, "output:\n%s", out)

	text := string(out)
	assert.Contains(t, text, "#Point")
	assert.Contains(t, text, "f64")
	assert.Contains(t, text, `"_id"`)
}

func TestCUEOutputCompilesWithBuiltinTypes(t *testing.T) {
	defs := mustParseAll(t, `
type Point { x: int, y: int }
type Line { from: Point, to: Point, label: string, note }
`)

	out, err := CUE(defs)
	require.NoError(t, err)

	v := cuecontext.New().CompileBytes(out)
	require.NoError(t, v.Err(), "output:\n%s", out)

	line := v.LookupPath(cue.ParsePath("#Line"))
	require.True(t, line.Exists())
	assert.True(t, line.LookupPath(cue.ParsePath("from.x")).Exists(), "references to other definitions resolve")
}

func TestCUEEmpty(t *testing.T) {
	out, err := CUE(nil)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(out)))
}

func TestCUERejectsUnrepresentableNames(t *testing.T) {
	tests := []struct {
		name string
		defs []ir.TypeDef
		want string
	}{
		{"reserved definition", []ir.TypeDef{{Name: "__T", Fields: []ir.Field{}}}, "reserved"},
		{"reserved type", []ir.TypeDef{{Name: "T", Fields: []ir.Field{ir.TypedField("a", "__x")}}}, "reserved"},
		{"top as type", []ir.TypeDef{{Name: "T", Fields: []ir.Field{ir.TypedField("a", "_")}}}, "top"},
		{"keyword type", []ir.TypeDef{{Name: "T", Fields: []ir.Field{ir.TypedField("a", "if")}}}, "keyword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CUE(tt.defs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCUEQuotesKeywordLabels(t *testing.T) {
	defs := []ir.TypeDef{{Name: "T", Fields: []ir.Field{
		ir.TypedField("for", "int"),
		ir.TypedField("null", "null"),
		ir.UntypedField("__x"),
	}}}

	out, err := CUE(defs)
	require.NoError(t, err)

	_, err = parser.ParseFile("export.cue", out)
	require.NoError(t, err, "output:\n%s", out)

	text := string(out)
	assert.Contains(t, text, `"for":`)
	assert.Contains(t, text, `"null":`)
	assert.Contains(t, text, `"__x":`)
}

func TestCheckCUEName(t *testing.T) {
	for _, ok := range []string{"Point", "_id", "null", "true", "x1", "for", "package"} {
		assert.NoError(t, CheckCUEName(ok), ok)
	}
	for _, bad := range []string{"_", "__", "__x", "if", "in", "let", "func"} {
		assert.Error(t, CheckCUEName(bad), bad)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	defs := mustParseAll(t, "type Point { x: f64, label }\ntype Unit {}")

	out, err := YAML(defs)
	require.NoError(t, err)

	var decoded []ir.TypeDef
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	for i := range defs {
		assert.True(t, defs[i].Equal(decoded[i]), "definition %d", i)
	}
	assert.NotContains(t, string(out), "type: \"\"", "absent type must be omitted")
}

func TestJSONCanonical(t *testing.T) {
	defs := mustParseAll(t, "type P { x: f64, y }")

	out, err := JSON(defs)
	require.NoError(t, err)
	assert.Equal(t, `[{"fields":[{"name":"x","type":"f64"},{"name":"y"}],"name":"P"}]`, string(out))

	out, err = JSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestRenderDispatch(t *testing.T) {
	defs := mustParseAll(t, "type A { a }")

	for _, format := range Formats {
		out, err := Render(format, defs)
		require.NoError(t, err, format)
		assert.NotEmpty(t, out, format)
	}

	_, err := Render("xml", defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}
