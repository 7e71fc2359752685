package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tdl/internal/compiler"
	"github.com/roach88/tdl/internal/ir"
)

// CheckResult holds the outcome of a check.
type CheckResult struct {
	Valid       bool                       `json:"valid"`
	Definitions int                        `json:"definitions"`
	Errors      []compiler.ValidationError `json:"errors,omitempty"`
	Warnings    []compiler.ValidationError `json:"warnings,omitempty"`
	Cycles      []compiler.CycleWarning    `json:"cycles,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file|dir|->",
		Short: "Parse and validate type definitions",
		Long: `Parse every definition in the input and check them as a set.

Errors: a type defined twice, a field repeated within one type.
Warnings: types without fields, types that reference each other in a cycle.

Exit codes:
  0 - Definitions valid (warnings allowed)
  1 - Syntax or validation errors
  2 - Command error`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sources, err := ReadSources(path, cmd.InOrStdin())
	if err != nil {
		return outputLoadError(formatter, asLoadError(err))
	}

	var defs []ir.TypeDef
	for _, src := range sources {
		result, err := ParseSource(src, true)
		if err != nil {
			return outputLoadError(formatter, asLoadError(err))
		}
		defs = append(defs, result.Definitions...)
	}
	formatter.VerboseLog("Checking %d definition(s) from %d source(s)", len(defs), len(sources))

	result := checkDefinitions(defs)
	if !result.Valid {
		return outputCheckFailure(formatter, result)
	}
	return outputCheckSuccess(formatter, result)
}

// checkDefinitions splits validation problems by severity and adds cycle
// analysis.
func checkDefinitions(defs []ir.TypeDef) CheckResult {
	result := CheckResult{Valid: true, Definitions: len(defs)}
	for _, e := range compiler.Validate(defs) {
		if e.IsError() {
			result.Errors = append(result.Errors, e)
			result.Valid = false
		} else {
			result.Warnings = append(result.Warnings, e)
		}
	}
	result.Cycles = compiler.AnalyzeCycles(defs)
	return result
}

func outputCheckSuccess(formatter *OutputFormatter, result CheckResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d definition(s) valid\n", result.Definitions)
	writeCheckWarnings(formatter, result)
	return nil
}

func outputCheckFailure(formatter *OutputFormatter, result CheckResult) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeInvalid,
				Message: result.Errors[0].Error(),
			},
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("check failed with %d error(s)", len(result.Errors)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Check failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range result.Errors {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", e.Code, e.Message)
		fmt.Fprintf(formatter.Writer, "    at %s\n", e.Field)
	}
	writeCheckWarnings(formatter, result)

	return NewExitError(ExitFailure, fmt.Sprintf("check failed with %d error(s)", len(result.Errors)))
}

func writeCheckWarnings(formatter *OutputFormatter, result CheckResult) {
	if len(result.Warnings) == 0 && len(result.Cycles) == 0 {
		return
	}
	fmt.Fprintln(formatter.Writer)
	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "⚠ %s: %s\n", w.Code, w.Message)
	}
	for _, c := range result.Cycles {
		fmt.Fprintf(formatter.Writer, "⚠ %s\n", c.Message)
	}
}
