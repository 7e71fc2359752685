// Package ir provides the value types produced by the tdl parser.
//
// This package contains the data model and its canonical serialization only.
// All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Field and TypeDef own copies of the text they were parsed from
//   - An absent field type is a nil pointer, never an empty string
//   - All JSON tags use snake_case
//   - Content-addressed IDs use RFC 8785 canonical JSON with domain separation
package ir
