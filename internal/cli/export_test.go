package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tdl/internal/compiler"
	"github.com/roach88/tdl/internal/ir"
)

func executeExport(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewExportCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestExportCommandJSON(t *testing.T) {
	path := writeSource(t, t.TempDir(), "shapes.tdl", shapesSource)

	out, err := executeExport(t, "text", path, "--to", "json")
	require.NoError(t, err)
	assert.Equal(t,
		`[{"fields":[{"name":"x","type":"f64"},{"name":"y","type":"f64"}],"name":"Point"},{"fields":[],"name":"Unit"}]`,
		out,
	)
}

func TestExportCommandYAML(t *testing.T) {
	path := writeSource(t, t.TempDir(), "shapes.tdl", shapesSource)

	out, err := executeExport(t, "text", path, "--to", "yaml")
	require.NoError(t, err)

	var defs []ir.TypeDef
	require.NoError(t, yaml.Unmarshal([]byte(out), &defs))
	require.Len(t, defs, 2)
	assert.Equal(t, "Point", defs[0].Name)
	assert.Equal(t, "f64", defs[0].Fields[1].TypeName())
}

func TestExportCommandCUE(t *testing.T) {
	path := writeSource(t, t.TempDir(), "shapes.tdl", "type Point { x: int }\ntype Line { a: Point, b: Point, note }\n")

	out, err := executeExport(t, "text", path)
	require.NoError(t, err)
	assert.Regexp(t, `a:\s+#Point`, out)
	assert.Regexp(t, `note:\s+_`, out)

	defs, err := compiler.CompileCUE("shapes.cue", []byte(out))
	require.NoError(t, err)
	want := []ir.TypeDef{
		{Name: "Point", Fields: []ir.Field{ir.TypedField("x", "int")}},
		{Name: "Line", Fields: []ir.Field{
			ir.TypedField("a", "Point"), ir.TypedField("b", "Point"), ir.UntypedField("note"),
		}},
	}
	require.Len(t, defs, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(defs[i]), "definition %d: want %s, got %s", i, want[i], defs[i])
	}
}

func TestExportCommandUnknownFormat(t *testing.T) {
	path := writeSource(t, t.TempDir(), "shapes.tdl", shapesSource)

	out, err := executeExport(t, "text", path, "--to", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E006]")
}

func TestExportCommandCUERejectsReservedName(t *testing.T) {
	path := writeSource(t, t.TempDir(), "reserved.tdl", "type A { x: __foo }")

	out, err := executeExport(t, "text", path, "--to", "cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E006]")
	assert.Contains(t, out, "__foo")
}

func TestExportCommandSyntaxError(t *testing.T) {
	path := writeSource(t, t.TempDir(), "broken.tdl", "type Point { x: f64")

	_, err := executeExport(t, "text", path, "--to", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestExportCommandOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "shapes.tdl", shapesSource)
	outputFile := filepath.Join(dir, "shapes.yaml")

	out, err := executeExport(t, "json", path, "--to", "yaml", "-o", outputFile)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Point")
}
