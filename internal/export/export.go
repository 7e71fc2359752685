package export

import (
	"fmt"

	"github.com/roach88/tdl/internal/ir"
)

// Format names accepted by Render.
const (
	FormatCUE  = "cue"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported export formats.
var Formats = []string{FormatCUE, FormatJSON, FormatYAML}

// Render renders defs in the named format.
func Render(format string, defs []ir.TypeDef) ([]byte, error) {
	switch format {
	case FormatCUE:
		return CUE(defs)
	case FormatJSON:
		return JSON(defs)
	case FormatYAML:
		return YAML(defs)
	default:
		return nil, fmt.Errorf("unknown export format %q: must be one of %v", format, Formats)
	}
}

// JSON renders defs as a canonical JSON array.
func JSON(defs []ir.TypeDef) ([]byte, error) {
	if defs == nil {
		defs = []ir.TypeDef{}
	}
	out, err := ir.MarshalCanonical(defs)
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return out, nil
}
