package export

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tdl/internal/ir"
)

// YAML renders defs as a YAML sequence. Untyped fields omit the type key.
func YAML(defs []ir.TypeDef) ([]byte, error) {
	if defs == nil {
		defs = []ir.TypeDef{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(defs); err != nil {
		return nil, fmt.Errorf("export yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("export yaml: %w", err)
	}
	return buf.Bytes(), nil
}
