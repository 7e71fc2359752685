// Package grammar holds a declarative rendition of the tdl grammar built with
// participle. It documents the grammar as EBNF and serves as an independent
// oracle for the hand-written parsers in package parse.
//
// The two agree on declarations whose tokens are separated the usual way.
// They differ in two places, both because participle tokenizes first:
//   - "typePoint {}" lexes as one identifier here, while parse reads the
//     keyword and then the name "Point"
//   - whitespace, newlines included, is elided everywhere here, while parse
//     only allows newlines around list elements and after the closing brace
package grammar

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/roach88/tdl/internal/ir"
)

type fileNode struct {
	Defs []*typeDefNode `parser:"@@*"`
}

type typeDefNode struct {
	Name   string       `parser:"'type' @Ident '{'"`
	Fields []*fieldNode `parser:"( @@ ( ',' @@ )* ','? )? '}'"`
}

type fieldNode struct {
	Name string  `parser:"@Ident"`
	Type *string `parser:"( ':' @Ident )?"`
}

var defLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[{}:,]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// Lookahead of 2 lets the list back out of a trailing ',' before '}'.
var reference = participle.MustBuild[fileNode](
	participle.Lexer(defLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// EBNF returns the grammar in EBNF notation.
func EBNF() string {
	return reference.String()
}

// Parse parses every declaration in src with the reference grammar.
func Parse(src string) ([]ir.TypeDef, error) {
	file, err := reference.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("reference grammar: %w", err)
	}

	defs := make([]ir.TypeDef, 0, len(file.Defs))
	for _, node := range file.Defs {
		def := ir.TypeDef{Name: node.Name, Fields: make([]ir.Field, 0, len(node.Fields))}
		for _, f := range node.Fields {
			if f.Type != nil {
				def.Fields = append(def.Fields, ir.TypedField(f.Name, *f.Type))
			} else {
				def.Fields = append(def.Fields, ir.UntypedField(f.Name))
			}
		}
		defs = append(defs, def)
	}
	return defs, nil
}
