package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tdl/internal/ir"
)

func strPtr(s string) *string { return &s }

func TestRun_PassingCases(t *testing.T) {
	scenario := &Scenario{
		Name:        "passing",
		Description: "every rule matches as expected",
		Cases: []Case{
			{Rule: RuleIdent, Input: " asdf ", Expect: Expect{Name: "asdf", Remaining: strPtr("")}},
			{Rule: RuleField, Input: "x: f64", Expect: Expect{Name: "x", Type: strPtr("f64")}},
			{Rule: RuleFieldList, Input: "a, b,", Expect: Expect{Fields: []ExpectedField{{Name: "a"}, {Name: "b"}}}},
			{Rule: RuleTypeDef, Input: "type Unit {}", Expect: Expect{Name: "Unit"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Outcomes, 4)

	for i, o := range result.Outcomes {
		assert.Equal(t, i, o.Case)
		assert.True(t, o.Matched)
		assert.Empty(t, o.Error)
	}
	assert.Equal(t, ir.IRString("asdf"), result.Outcomes[0].Value)
}

func TestRun_ExpectedFailure(t *testing.T) {
	scenario := &Scenario{
		Name:        "failure",
		Description: "rejected input",
		Cases: []Case{
			{Rule: RuleTypeDef, Input: "type { x }", Expect: Expect{Fail: true}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	o := result.Outcomes[0]
	assert.False(t, o.Matched)
	assert.Nil(t, o.Value)
	assert.Equal(t, "type { x }", o.Remaining)
	assert.Equal(t, "expected identifier: no match", o.Error)
}

func TestRun_ReportsMismatches(t *testing.T) {
	tests := []struct {
		name    string
		c       Case
		wantErr string
	}{
		{
			name:    "unexpected failure",
			c:       Case{Rule: RuleIdent, Input: "9", Expect: Expect{Name: "x"}},
			wantErr: "unexpected failure: expected identifier: no match",
		},
		{
			name:    "unexpected match",
			c:       Case{Rule: RuleIdent, Input: "x", Expect: Expect{Fail: true}},
			wantErr: "expected no match",
		},
		{
			name:    "wrong remaining",
			c:       Case{Rule: RuleField, Input: "x, y", Expect: Expect{Name: "x", Remaining: strPtr("")}},
			wantErr: `remaining: want "", got ", y"`,
		},
		{
			name:    "typed field expected untyped",
			c:       Case{Rule: RuleField, Input: "x: T", Expect: Expect{Name: "x"}},
			wantErr: `value: want {"name":"x"}, got {"name":"x","type":"T"}`,
		},
		{
			name: "wrong fields",
			c: Case{Rule: RuleTypeDef, Input: "type P { a }", Expect: Expect{
				Name:   "P",
				Fields: []ExpectedField{{Name: "b"}},
			}},
			wantErr: "value: want",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Run(&Scenario{Name: "mismatch", Description: "d", Cases: []Case{tt.c}})
			require.NoError(t, err)
			assert.False(t, result.Pass)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], tt.wantErr)
			assert.True(t, strings.HasPrefix(result.Errors[0], "cases[0] "+tt.c.Rule))
		})
	}
}

func TestRun_Isolation(t *testing.T) {
	scenario := &Scenario{
		Name:        "isolated",
		Description: "runs twice against fresh catalogs",
		Cases: []Case{
			{Rule: RuleTypeDef, Input: "type A { x }", Expect: Expect{Name: "A", Fields: []ExpectedField{{Name: "x"}}}},
		},
	}

	for i := 0; i < 2; i++ {
		result, err := Run(scenario)
		require.NoError(t, err, "run %d", i)
		assert.True(t, result.Pass, "run %d errors: %v", i, result.Errors)
	}
}

func TestRun_Testdata(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}
