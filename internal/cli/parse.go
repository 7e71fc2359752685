package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tdl/internal/export"
	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/store"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Database string // catalog to record the run in
	Output   string // canonical JSON output file
	All      bool   // parse every definition, not just the first
}

// ParsedDef is a parsed definition with its content ID and origin.
type ParsedDef struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	ir.TypeDef
}

// ParseOutput is the payload of a successful parse.
type ParseOutput struct {
	Definitions []ParsedDef `json:"definitions"`
	Remaining   string      `json:"remaining"`
	RunID       string      `json:"run_id,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <file|dir|->",
		Short: "Parse type definitions",
		Long: `Parse type definitions from a file, a directory of .tdl files, or stdin.

Without --all only the first definition is parsed and the unconsumed input
is reported. With --all (implied for directories) every definition must
parse and the whole input must be consumed.

Exit codes:
  0 - Input parsed
  1 - Syntax error
  2 - Command error (missing input, catalog or output failure)

Examples:
  tdl parse shapes.tdl
  tdl parse --all ./defs --db ./tdl.db
  echo 'type Unit {}' | tdl parse -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the definitions in this SQLite catalog")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write canonical JSON to this file")
	cmd.Flags().BoolVar(&opts.All, "all", false, "parse every definition in the input")

	return cmd
}

func runParse(opts *ParseOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := opts.Logger(cmd.ErrOrStderr())

	sources, err := ReadSources(path, cmd.InOrStdin())
	if err != nil {
		return outputLoadError(formatter, asLoadError(err))
	}
	all := opts.All || len(sources) > 1

	out := ParseOutput{Definitions: []ParsedDef{}}
	var defs []ir.TypeDef
	for _, src := range sources {
		formatter.VerboseLog("Parsing %s (%d bytes)", src.Name, len(src.Text))

		result, err := ParseSource(src, all)
		if err != nil {
			return outputLoadError(formatter, asLoadError(err))
		}
		for _, def := range result.Definitions {
			id, err := ir.TypeDefID(def)
			if err != nil {
				return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("hashing %s: %v", def.Name, err))
			}
			out.Definitions = append(out.Definitions, ParsedDef{ID: id, Source: src.Name, TypeDef: def})
			defs = append(defs, def)
		}
		out.Remaining = result.Remaining
	}
	logger.Debug("input parsed", "path", path, "sources", len(sources), "definitions", len(defs))

	if opts.Output != "" {
		data, err := export.JSON(defs)
		if err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("encoding output: %v", err))
		}
		if err := os.WriteFile(opts.Output, data, 0644); err != nil {
			return outputCommandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
	}

	if opts.Database != "" {
		run, err := recordRun(cmd.Context(), opts.Database, path, defs, opts.RootOptions, cmd)
		if err != nil {
			return outputCommandError(formatter, ErrCodeCatalog, err.Error())
		}
		out.RunID = run.ID
	}

	return outputParseSuccess(formatter, out, opts.Output)
}

// recordRun stores defs as one catalog run.
func recordRun(ctx context.Context, dbPath, source string, defs []ir.TypeDef, opts *RootOptions, cmd *cobra.Command) (store.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(dbPath, store.WithLogger(opts.Logger(cmd.ErrOrStderr())))
	if err != nil {
		return store.Run{}, fmt.Errorf("opening catalog: %w", err)
	}
	defer st.Close()

	run, err := st.RecordRun(ctx, source, defs)
	if err != nil {
		return store.Run{}, fmt.Errorf("recording run: %w", err)
	}
	return run, nil
}

func outputParseSuccess(formatter *OutputFormatter, out ParseOutput, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(out)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Parsed %d definition(s)\n\n", len(out.Definitions))
	for _, def := range out.Definitions {
		fmt.Fprintf(w, "  %s\n", def.TypeDef)
	}
	if len(out.Definitions) > 0 {
		fmt.Fprintln(w)
	}
	if out.Remaining != "" {
		fmt.Fprintf(w, "Remaining: %q\n", out.Remaining)
	}
	if outputFile != "" {
		fmt.Fprintf(w, "Wrote canonical JSON to %s\n", outputFile)
	}
	if out.RunID != "" {
		fmt.Fprintf(w, "Recorded run %s\n", out.RunID)
	}
	return nil
}

// outputLoadError reports a read or syntax error. Syntax errors exit with
// ExitFailure; everything else is a command error.
func outputLoadError(formatter *OutputFormatter, loadErr *LoadError) error {
	code := ExitCommandError
	if loadErr.Code == ErrCodeSyntax {
		code = ExitFailure
	}

	if formatter.Format == "json" {
		_ = formatter.Error(loadErr.Code, loadErr.Message, loadErr.Details())
	} else {
		if loadErr.Pos != nil {
			fmt.Fprintf(formatter.Writer, "✗ %s:%d:%d\n", loadErr.Source, loadErr.Pos.Line, loadErr.Pos.Column)
		}
		fmt.Fprintf(formatter.Writer, "Error [%s]: %s\n", loadErr.Code, loadErr.Message)
	}
	return WrapExitError(code, "input rejected", loadErr)
}

// outputCommandError reports a command-level error (exit code 2).
func outputCommandError(formatter *OutputFormatter, code, message string) error {
	return formatter.Fail(ExitCommandError, code, message, nil)
}
