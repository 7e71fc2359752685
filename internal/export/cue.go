package export

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/format"

	"github.com/roach88/tdl/internal/ir"
)

// CUE renders each definition as a CUE definition.
//
// A field type naming another definition in defs becomes a reference to it
// (#Name); any other type is emitted as a plain identifier, so builtin CUE
// types such as int and string resolve. Untyped fields are top (_).
// Labels starting with an underscore or spelled like a CUE keyword are
// quoted so they stay regular fields.
//
// Definition and type names that CUE cannot hold as identifiers are an
// error; see CheckCUEName.
func CUE(defs []ir.TypeDef) ([]byte, error) {
	defined := make(map[string]bool, len(defs))
	for _, def := range defs {
		defined[def.Name] = true
	}

	file := &ast.File{}
	for _, def := range defs {
		if err := CheckCUEName(def.Name); err != nil {
			return nil, fmt.Errorf("export cue: type %s: %w", def.Name, err)
		}
		body := &ast.StructLit{}
		for _, f := range def.Fields {
			if f.HasType() {
				if err := CheckCUEName(f.TypeName()); err != nil {
					return nil, fmt.Errorf("export cue: %s.%s: %w", def.Name, f.Name, err)
				}
			}
			body.Elts = append(body.Elts, &ast.Field{
				Label: fieldLabel(f.Name),
				Value: typeExpr(f, defined),
			})
		}
		file.Decls = append(file.Decls, &ast.Field{
			Label: ast.NewIdent("#" + def.Name),
			Value: body,
		})
	}

	out, err := format.Node(file)
	if err != nil {
		return nil, fmt.Errorf("export cue: %w", err)
	}
	return out, nil
}

// cueKeywords are identifiers with a meaning of their own in CUE source.
var cueKeywords = map[string]bool{
	"package": true, "import": true, "for": true, "in": true, "if": true,
	"let": true, "func": true, "true": true, "false": true, "null": true,
}

// unrepresentable are keywords that cannot stand alone as a field value.
// null, true and false read back as literals, which CompileCUE accepts.
var unrepresentable = map[string]bool{"in": true, "if": true, "let": true, "func": true}

// CheckCUEName reports whether name can be exported as a CUE definition
// name or field type. `_` would read back as an untyped field, CUE
// reserves identifiers starting with `__`, and some keywords cannot
// appear as a value.
func CheckCUEName(name string) error {
	switch {
	case name == "_":
		return fmt.Errorf("name %q is CUE top", name)
	case strings.HasPrefix(name, "__"):
		return fmt.Errorf("name %q: identifiers starting with __ are reserved in CUE", name)
	case unrepresentable[name]:
		return fmt.Errorf("name %q is a CUE keyword", name)
	}
	return nil
}

func fieldLabel(name string) ast.Label {
	if strings.HasPrefix(name, "_") || cueKeywords[name] {
		return ast.NewString(name)
	}
	return ast.NewIdent(name)
}

func typeExpr(f ir.Field, defined map[string]bool) ast.Expr {
	if !f.HasType() {
		return ast.NewIdent("_")
	}
	if defined[f.TypeName()] {
		return ast.NewIdent("#" + f.TypeName())
	}
	return ast.NewIdent(f.TypeName())
}
