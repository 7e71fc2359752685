package ir

// Version constants for the grammar and the tool.
const (
	// GrammarVersion identifies the accepted type-definition grammar.
	GrammarVersion = "1"

	// ToolVersion is the tdl release version.
	ToolVersion = "0.1.0"
)
