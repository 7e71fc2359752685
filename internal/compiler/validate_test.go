package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tdl/internal/ir"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateValid(t *testing.T) {
	defs := []ir.TypeDef{
		def("Point", ir.TypedField("x", "f64"), ir.TypedField("y", "f64")),
		def("Tag", ir.UntypedField("label")),
	}

	errs := Validate(defs)
	assert.Empty(t, errs)
	assert.False(t, HasErrors(errs))
}

func TestValidateEmptyInput(t *testing.T) {
	errs := Validate(nil)
	assert.NotNil(t, errs)
	assert.Empty(t, errs)
}

func TestValidateDuplicateType(t *testing.T) {
	defs := []ir.TypeDef{
		def("Point", ir.UntypedField("x")),
		def("Other", ir.UntypedField("y")),
		def("Point", ir.UntypedField("z")),
	}

	errs := Validate(defs)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateType, errs[0].Code)
	assert.Equal(t, "definitions[2].name", errs[0].Field)
	assert.Contains(t, errs[0].Message, "definitions[0]")
	assert.True(t, HasErrors(errs))
}

func TestValidateDuplicateField(t *testing.T) {
	defs := []ir.TypeDef{
		def("Point", ir.TypedField("x", "f64"), ir.UntypedField("x")),
	}

	errs := Validate(defs)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateField, errs[0].Code)
	assert.Equal(t, "definitions[0].fields[1].name", errs[0].Field)
}

func TestValidateEmptyDefinitionIsWarning(t *testing.T) {
	errs := Validate([]ir.TypeDef{def("Unit")})

	require.Len(t, errs, 1)
	assert.Equal(t, ErrEmptyDefinition, errs[0].Code)
	assert.Equal(t, SeverityWarning, errs[0].Severity)
	assert.False(t, errs[0].IsError())
	assert.False(t, HasErrors(errs))
}

func TestValidateIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		def  ir.TypeDef
		want []string
	}{
		{"type name with digit start", def("9Lives", ir.UntypedField("x")), []string{ErrInvalidTypeName}},
		{"type name with space", def(" Point", ir.UntypedField("x")), []string{ErrInvalidTypeName}},
		{"empty type name", def("", ir.UntypedField("x")), []string{ErrInvalidTypeName}},
		{"field name with dash", def("P", ir.UntypedField("a-b")), []string{ErrInvalidFieldName}},
		{"field type with dot", def("P", ir.TypedField("a", "pkg.T")), []string{ErrInvalidFieldType}},
		{"non-ascii field", def("P", ir.UntypedField("héllo")), []string{ErrInvalidFieldName}},
		{"underscore names", def("_", ir.TypedField("_x", "_T1")), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codes(Validate([]ir.TypeDef{tt.def})))
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	defs := []ir.TypeDef{
		def("A", ir.UntypedField("x"), ir.UntypedField("x")),
		def("A", ir.TypedField("bad name", "T")),
		def("B"),
	}

	errs := Validate(defs)
	assert.Equal(t, []string{
		ErrDuplicateField,
		ErrDuplicateType,
		ErrInvalidFieldName,
		ErrEmptyDefinition,
	}, codes(errs))
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Field: "definitions[0].name", Message: "bad", Code: ErrInvalidTypeName}
	assert.Equal(t, "[E101] definitions[0].name: bad", e.Error())

	e.Line = 3
	assert.Equal(t, "[E101] line 3: definitions[0].name: bad", e.Error())
}
