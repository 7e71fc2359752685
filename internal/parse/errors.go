package parse

import (
	"errors"
	"fmt"
)

// ErrNoMatch is returned (wrapped in a *SyntaxError) by every rule that does
// not match at the cursor it was given.
var ErrNoMatch = errors.New("no match")

// Rule names reported by SyntaxError.
const (
	RuleKeyword    = `keyword "type"`
	RuleIdent      = "identifier"
	RuleFieldType  = "field type"
	RuleOpenBrace  = `"{"`
	RuleCloseBrace = `"}"`
)

// SyntaxError reports which rule failed to match. It carries no position:
// the failing parser returns its input cursor, and callers that need a
// location derive it from that.
type SyntaxError struct {
	Rule string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s: %v", e.Rule, ErrNoMatch)
}

func (e *SyntaxError) Unwrap() error {
	return ErrNoMatch
}

// fail returns the unchanged cursor, the zero value and a SyntaxError.
func fail[V any](c Cursor, rule string) (Cursor, V, error) {
	var zero V
	return c, zero, &SyntaxError{Rule: rule}
}
