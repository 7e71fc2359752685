package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/parser"
	"cuelang.org/go/cue/token"

	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/parse"
)

// CompileCUE reads type definitions back from CUE source in the shape
// export.CUE writes:
//
//	#Point: {
//		x: f64
//		next: #Point
//		tag: _
//	}
//
// Each top-level definition becomes a TypeDef. A field value must be a
// single identifier: `_` is an untyped field, `#Name` refers to the type
// Name, anything else (including null, true and false) is used as the
// type name. Optional and required markers on labels are ignored. Package
// clauses and comments are allowed.
//
// The input is only parsed, not evaluated, so type names that are not CUE
// builtins do not need to resolve.
func CompileCUE(filename string, src []byte) ([]ir.TypeDef, error) {
	file, err := parser.ParseFile(filename, src)
	if err != nil {
		return nil, formatCUEError(err)
	}

	defs := []ir.TypeDef{}
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.Package, *ast.CommentGroup:
			continue
		case *ast.Field:
			def, err := compileDefinition(d)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		default:
			return nil, &CompileError{
				Field:   "declaration",
				Message: fmt.Sprintf("unsupported declaration %T", decl),
				Pos:     decl.Pos(),
			}
		}
	}
	return defs, nil
}

func compileDefinition(f *ast.Field) (ir.TypeDef, error) {
	label, ok := f.Label.(*ast.Ident)
	if !ok || !strings.HasPrefix(label.Name, "#") {
		return ir.TypeDef{}, &CompileError{
			Field:   "definition",
			Message: "top-level fields must be definitions (#Name)",
			Pos:     f.Pos(),
		}
	}
	name := strings.TrimPrefix(label.Name, "#")
	if err := checkIdent(name, "definition", label.Pos()); err != nil {
		return ir.TypeDef{}, err
	}

	body, ok := f.Value.(*ast.StructLit)
	if !ok {
		return ir.TypeDef{}, &CompileError{
			Field:   "definition",
			Message: fmt.Sprintf("#%s must be a struct", name),
			Pos:     f.Value.Pos(),
		}
	}

	def := ir.TypeDef{Name: name, Fields: []ir.Field{}}
	for _, elt := range body.Elts {
		switch e := elt.(type) {
		case *ast.CommentGroup:
			continue
		case *ast.Field:
			field, err := compileField(e)
			if err != nil {
				return ir.TypeDef{}, err
			}
			def.Fields = append(def.Fields, field)
		default:
			return ir.TypeDef{}, &CompileError{
				Field:   "field",
				Message: fmt.Sprintf("#%s: unsupported struct element %T", name, elt),
				Pos:     elt.Pos(),
			}
		}
	}
	return def, nil
}

func compileField(f *ast.Field) (ir.Field, error) {
	var name string
	switch l := f.Label.(type) {
	case *ast.Ident:
		name = l.Name
	case *ast.BasicLit:
		if keywordLiteral(l) {
			name = l.Value
			break
		}
		unquoted, err := strconv.Unquote(l.Value)
		if l.Kind != token.STRING || err != nil {
			return ir.Field{}, &CompileError{Field: "field", Message: fmt.Sprintf("unsupported label %s", l.Value), Pos: l.Pos()}
		}
		name = unquoted
	default:
		return ir.Field{}, &CompileError{Field: "field", Message: fmt.Sprintf("unsupported label %T", f.Label), Pos: f.Pos()}
	}
	if err := checkIdent(name, "field", f.Label.Pos()); err != nil {
		return ir.Field{}, err
	}

	// null, true and false are literals in CUE but plain type names here.
	if lit, ok := f.Value.(*ast.BasicLit); ok && keywordLiteral(lit) {
		return ir.TypedField(name, lit.Value), nil
	}

	value, ok := f.Value.(*ast.Ident)
	if !ok {
		return ir.Field{}, &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("field %s: type must be a single identifier", name),
			Pos:     f.Value.Pos(),
		}
	}
	if value.Name == "_" {
		return ir.UntypedField(name), nil
	}

	typ := strings.TrimPrefix(value.Name, "#")
	if err := checkIdent(typ, "type", value.Pos()); err != nil {
		return ir.Field{}, err
	}
	return ir.TypedField(name, typ), nil
}

func keywordLiteral(lit *ast.BasicLit) bool {
	switch lit.Kind {
	case token.NULL, token.TRUE, token.FALSE:
		return true
	}
	return false
}

// checkIdent reports names the definition grammar could not parse back.
func checkIdent(name, field string, pos token.Pos) error {
	ident, rest, err := parse.ParseIdent(name)
	if err != nil || rest != "" || ident != name {
		return &CompileError{
			Field:   field,
			Message: fmt.Sprintf("%q is not a valid identifier", name),
			Pos:     pos,
		}
	}
	return nil
}

// CompileError is a CUE input error with its source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
