// Package export renders parsed type definitions in other notations.
//
// Supported formats:
//   - cue: one CUE definition per TypeDef (#Name: { field: type })
//   - yaml: a YAML list of definitions
//   - json: canonical JSON (RFC 8785), the same bytes used for content IDs
package export
