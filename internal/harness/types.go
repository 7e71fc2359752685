package harness

import "github.com/roach88/tdl/internal/ir"

// Outcome is what one case actually produced.
type Outcome struct {
	Case      int        `json:"case"`
	Rule      string     `json:"rule"`
	Input     string     `json:"input"`
	Matched   bool       `json:"matched"`
	Value     ir.IRValue `json:"value,omitempty"` // nil when the rule did not match
	Remaining string     `json:"remaining"`
	Error     string     `json:"error,omitempty"`
}

// canonical converts the outcome for golden snapshots.
func (o Outcome) canonical() ir.IRObject {
	obj := ir.IRObject{
		"case":      ir.IRInt(o.Case),
		"rule":      ir.IRString(o.Rule),
		"input":     ir.IRString(o.Input),
		"matched":   ir.IRBool(o.Matched),
		"remaining": ir.IRString(o.Remaining),
	}
	if o.Value != nil {
		obj["value"] = o.Value
	}
	if o.Error != "" {
		obj["error"] = ir.IRString(o.Error)
	}
	return obj
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every case met its expectation.
	Pass bool `json:"pass"`

	// Outcomes holds one entry per case, in case order.
	Outcomes []Outcome `json:"outcomes"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Outcomes: []Outcome{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
