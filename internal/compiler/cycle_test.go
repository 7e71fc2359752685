package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tdl/internal/ir"
)

func def(name string, fields ...ir.Field) ir.TypeDef {
	if fields == nil {
		fields = []ir.Field{}
	}
	return ir.TypeDef{Name: name, Fields: fields}
}

func TestAnalyzeCycles_Empty(t *testing.T) {
	warnings := AnalyzeCycles(nil)
	assert.NotNil(t, warnings)
	assert.Empty(t, warnings)
}

func TestAnalyzeCycles_DAG(t *testing.T) {
	defs := []ir.TypeDef{
		def("Line", ir.TypedField("from", "Point"), ir.TypedField("to", "Point")),
		def("Point", ir.TypedField("x", "f64"), ir.TypedField("y", "f64")),
	}

	warnings := AnalyzeCycles(defs)
	assert.Empty(t, warnings, "DAG should produce no cycle warnings")
}

func TestAnalyzeCycles_UntypedAndUnknownTypes(t *testing.T) {
	defs := []ir.TypeDef{
		def("A", ir.UntypedField("A"), ir.TypedField("b", "Missing")),
	}

	warnings := AnalyzeCycles(defs)
	assert.Empty(t, warnings, "field names and undefined types create no edges")
}

func TestAnalyzeCycles_SelfReference(t *testing.T) {
	defs := []ir.TypeDef{
		def("Node", ir.TypedField("value", "int"), ir.TypedField("next", "Node")),
	}

	warnings := AnalyzeCycles(defs)
	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"Node", "Node"}, warnings[0].Path)
	assert.Equal(t, "warning", warnings[0].Level)
	assert.Contains(t, warnings[0].Message, "Self-referencing")
}

func TestAnalyzeCycles_TwoNodeCycle(t *testing.T) {
	defs := []ir.TypeDef{
		def("Author", ir.TypedField("books", "Book")),
		def("Book", ir.TypedField("author", "Author")),
	}

	warnings := AnalyzeCycles(defs)
	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"Author", "Book", "Author"}, warnings[0].Path)
	assert.Contains(t, warnings[0].Message, "Author → Book → Author")
}

func TestAnalyzeCycles_StartsAtFirstDefinition(t *testing.T) {
	defs := []ir.TypeDef{
		def("C", ir.TypedField("a", "A")),
		def("A", ir.TypedField("b", "B")),
		def("B", ir.TypedField("c", "C")),
	}

	warnings := AnalyzeCycles(defs)
	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"C", "A", "B", "C"}, warnings[0].Path)
}

func TestAnalyzeCycles_SeparateCycles(t *testing.T) {
	defs := []ir.TypeDef{
		def("Tree", ir.TypedField("child", "Tree")),
		def("Leaf", ir.TypedField("v", "int")),
		def("Ping", ir.TypedField("p", "Pong")),
		def("Pong", ir.TypedField("p", "Ping")),
	}

	warnings := AnalyzeCycles(defs)
	require.Len(t, warnings, 2)

	var paths [][]string
	for _, w := range warnings {
		paths = append(paths, w.Path)
	}
	assert.ElementsMatch(t, [][]string{
		{"Tree", "Tree"},
		{"Ping", "Pong", "Ping"},
	}, paths)
}

func TestAnalyzeCycles_Deterministic(t *testing.T) {
	defs := []ir.TypeDef{
		def("A", ir.TypedField("b", "B")),
		def("B", ir.TypedField("c", "C"), ir.TypedField("a", "A")),
		def("C", ir.TypedField("a", "A")),
	}

	first := AnalyzeCycles(defs)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, AnalyzeCycles(defs))
	}
}

func TestAnalyzeCycles_RepeatedDefinitionMergesEdges(t *testing.T) {
	defs := []ir.TypeDef{
		def("A", ir.TypedField("x", "int")),
		def("A", ir.TypedField("self", "A")),
	}

	warnings := AnalyzeCycles(defs)
	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"A", "A"}, warnings[0].Path)
}
