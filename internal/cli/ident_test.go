package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeIdent(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewIdentCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestIdentCommandDemo(t *testing.T) {
	out, err := executeIdent(t, "text")
	require.NoError(t, err)
	assert.Equal(t, "\" asdf \" -> \"asdf\" (remaining \"\")\n", out)
}

func TestIdentCommandJSON(t *testing.T) {
	out, err := executeIdent(t, "json", "  snake_case9 rest")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   IdentOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, IdentOutput{Input: "  snake_case9 rest", Ident: "snake_case9", Remaining: "rest"}, resp.Data)
}

func TestIdentCommandNoMatch(t *testing.T) {
	out, err := executeIdent(t, "text", "9lives")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E201]: expected identifier: no match")
}

func TestIdentCommandTooManyArgs(t *testing.T) {
	_, err := executeIdent(t, "text", "a", "b")
	require.Error(t, err)
}
