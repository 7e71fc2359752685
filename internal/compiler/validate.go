package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/parse"
)

// Validation error codes (E100-E199)
const (
	ErrInvalidTypeName  = "E101" // definition name is not an identifier
	ErrInvalidFieldName = "E102" // field name is not an identifier
	ErrInvalidFieldType = "E103" // field type is not an identifier
	ErrEmptyDefinition  = "E104" // definition has no fields
	ErrDuplicateType    = "E105" // type name defined more than once
	ErrDuplicateField   = "E106" // field name repeated within a definition
)

// Severity levels for ValidationError.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError is a semantic problem in a set of definitions that the
// parser accepted.
type ValidationError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Line     int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// IsError reports whether the problem should fail a check.
func (e ValidationError) IsError() bool {
	return e.Severity != SeverityWarning
}

// Validate checks definitions for problems the grammar permits.
// All problems are returned; it does not stop at the first.
//
// Duplicate type names and duplicate field names are errors. Empty
// definitions are warnings. Identifier checks matter for definitions that
// did not come from the parser, such as CUE imports or hand-built values.
func Validate(defs []ir.TypeDef) []ValidationError {
	errs := []ValidationError{}
	seen := make(map[string]int, len(defs))

	for i, def := range defs {
		where := fmt.Sprintf("definitions[%d]", i)

		if !isIdent(def.Name) {
			errs = append(errs, ValidationError{
				Field:    where + ".name",
				Message:  fmt.Sprintf("%q is not a valid identifier", def.Name),
				Code:     ErrInvalidTypeName,
				Severity: SeverityError,
			})
		}

		if first, dup := seen[def.Name]; dup {
			errs = append(errs, ValidationError{
				Field:    where + ".name",
				Message:  fmt.Sprintf("type %s already defined at definitions[%d]", def.Name, first),
				Code:     ErrDuplicateType,
				Severity: SeverityError,
			})
		} else {
			seen[def.Name] = i
		}

		if len(def.Fields) == 0 {
			errs = append(errs, ValidationError{
				Field:    where + ".fields",
				Message:  fmt.Sprintf("type %s has no fields", def.Name),
				Code:     ErrEmptyDefinition,
				Severity: SeverityWarning,
			})
		}

		errs = append(errs, validateFields(where, def)...)
	}
	return errs
}

func validateFields(where string, def ir.TypeDef) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(def.Fields))

	for j, f := range def.Fields {
		path := fmt.Sprintf("%s.fields[%d]", where, j)

		if !isIdent(f.Name) {
			errs = append(errs, ValidationError{
				Field:    path + ".name",
				Message:  fmt.Sprintf("%q is not a valid identifier", f.Name),
				Code:     ErrInvalidFieldName,
				Severity: SeverityError,
			})
		}
		if f.HasType() && !isIdent(f.TypeName()) {
			errs = append(errs, ValidationError{
				Field:    path + ".type",
				Message:  fmt.Sprintf("%q is not a valid identifier", f.TypeName()),
				Code:     ErrInvalidFieldType,
				Severity: SeverityError,
			})
		}

		if seen[f.Name] {
			errs = append(errs, ValidationError{
				Field:    path + ".name",
				Message:  fmt.Sprintf("field %s repeated in type %s", f.Name, def.Name),
				Code:     ErrDuplicateField,
				Severity: SeverityError,
			})
		}
		seen[f.Name] = true
	}
	return errs
}

// isIdent reports whether s is exactly one identifier token.
func isIdent(s string) bool {
	if strings.TrimSpace(s) != s {
		return false
	}
	ident, rest, err := parse.ParseIdent(s)
	return err == nil && rest == "" && ident == s
}

// HasErrors reports whether errs contains anything above warning severity.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.IsError() {
			return true
		}
	}
	return false
}
