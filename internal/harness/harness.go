package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/parse"
	"github.com/roach88/tdl/internal/store"
	"github.com/roach88/tdl/internal/testutil"
)

// Harness executes scenarios against the parser.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Option configures a scenario run.
type Option func(*Harness)

// WithLogger sets the logger for per-case events. Runs are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh in-memory catalog. Execution flow:
//  1. Apply every case's rule to its input and compare with its expectation
//  2. Record all matched type definitions as one catalog run
//  3. Read the run back and check it survived storage unchanged
//
// A returned error means the scenario could not be executed; a failed
// expectation is reported through Result.Errors instead.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	st, err := store.Open(":memory:",
		store.WithLogger(h.logger),
		store.WithIDGenerator(testutil.NewFixedIDGenerator(scenario.Name)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()
	h.store = st

	result := NewResult()
	var defs []ir.TypeDef
	for i, c := range scenario.Cases {
		outcome, def, ok := h.runCase(i, c)
		result.Outcomes = append(result.Outcomes, outcome)
		for _, msg := range check(c, outcome) {
			result.AddError(fmt.Sprintf("cases[%d] %s %q: %s", i, c.Rule, c.Input, msg))
		}
		if ok {
			defs = append(defs, def)
		}
	}

	if err := h.verifyCatalog(context.Background(), scenario.Name, defs, result); err != nil {
		return nil, err
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"cases", len(scenario.Cases),
		"pass", result.Pass,
	)
	return result, nil
}

// runCase applies the case's rule. The returned TypeDef is only meaningful
// when ok is true, which requires a matched type_def case.
func (h *Harness) runCase(i int, c Case) (outcome Outcome, def ir.TypeDef, ok bool) {
	outcome = Outcome{Case: i, Rule: c.Rule, Input: c.Input}

	var (
		value ir.IRValue
		rest  string
		err   error
	)
	switch c.Rule {
	case RuleIdent:
		var name string
		name, rest, err = parse.ParseIdent(c.Input)
		value = ir.IRString(name)
	case RuleField:
		var cur parse.Cursor
		var f ir.Field
		cur, f, err = parse.FieldRule(parse.NewCursor(c.Input))
		rest = cur.Rest()
		value = f.Canonical()
	case RuleFieldList:
		var fields []ir.Field
		fields, rest = parse.ParseFieldList(c.Input)
		arr := make(ir.IRArray, len(fields))
		for j, f := range fields {
			arr[j] = f.Canonical()
		}
		value = arr
	case RuleTypeDef:
		def, rest, err = parse.ParseTypeDef(c.Input)
		value = def.Canonical()
		ok = err == nil
	}

	outcome.Remaining = rest
	if err != nil {
		outcome.Error = err.Error()
	} else {
		outcome.Matched = true
		outcome.Value = value
	}

	h.logger.Debug("case executed",
		"case", i,
		"rule", c.Rule,
		"matched", outcome.Matched,
		"remaining", len(rest),
	)
	return outcome, def, ok
}

// check compares an outcome with the case's expectation and returns one
// message per mismatch.
func check(c Case, o Outcome) []string {
	var msgs []string
	exp := c.Expect

	if exp.Remaining != nil && *exp.Remaining != o.Remaining {
		msgs = append(msgs, fmt.Sprintf("remaining: want %q, got %q", *exp.Remaining, o.Remaining))
	}

	if exp.Fail {
		if o.Matched {
			msgs = append(msgs, "expected no match, but the rule matched")
		} else if o.Remaining != c.Input {
			msgs = append(msgs, "failed rule consumed input")
		}
		return msgs
	}
	if !o.Matched {
		return append(msgs, "unexpected failure: "+o.Error)
	}

	var want ir.IRValue
	switch c.Rule {
	case RuleIdent:
		if exp.Name == "" {
			return msgs
		}
		want = ir.IRString(exp.Name)
	case RuleField:
		want = expectedField(ExpectedField{Name: exp.Name, Type: exp.Type})
	case RuleFieldList:
		want = expectedFields(exp.Fields)
	case RuleTypeDef:
		want = ir.IRObject{
			"name":   ir.IRString(exp.Name),
			"fields": expectedFields(exp.Fields),
		}
	}

	if err := sameValue(want, o.Value); err != nil {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

func expectedField(f ExpectedField) ir.IRObject {
	if f.Type == nil {
		return ir.UntypedField(f.Name).Canonical()
	}
	return ir.TypedField(f.Name, *f.Type).Canonical()
}

func expectedFields(fields []ExpectedField) ir.IRArray {
	arr := make(ir.IRArray, len(fields))
	for i, f := range fields {
		arr[i] = expectedField(f)
	}
	return arr
}

// sameValue compares two values by their canonical encoding.
func sameValue(want, got ir.IRValue) error {
	wantJSON, err := ir.MarshalCanonical(want)
	if err != nil {
		return fmt.Errorf("encode expectation: %w", err)
	}
	gotJSON, err := ir.MarshalCanonical(got)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	if string(wantJSON) != string(gotJSON) {
		return fmt.Errorf("value: want %s, got %s", wantJSON, gotJSON)
	}
	return nil
}

// verifyCatalog records defs as one run and checks the stored copies match.
func (h *Harness) verifyCatalog(ctx context.Context, name string, defs []ir.TypeDef, result *Result) error {
	run, err := h.store.RecordRun(ctx, name, defs)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	stored, err := h.store.ReadRun(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to read run: %w", err)
	}
	if len(stored) != len(defs) {
		result.AddError(fmt.Sprintf("catalog: stored %d definitions, want %d", len(stored), len(defs)))
		return nil
	}
	for i, def := range defs {
		if !def.Equal(stored[i].Def) {
			result.AddError(fmt.Sprintf("catalog: definition %d changed in storage: %s", i, stored[i].Def))
		}
	}

	if len(defs) > 0 {
		if _, err := h.store.LookupTypeDef(ctx, defs[len(defs)-1].Name); errors.Is(err, store.ErrNotFound) {
			result.AddError(fmt.Sprintf("catalog: %s not found after recording", defs[len(defs)-1].Name))
		} else if err != nil {
			return fmt.Errorf("failed to look up definition: %w", err)
		}
	}
	return nil
}
