package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tdl/internal/compiler"
	"github.com/roach88/tdl/internal/ir"
)

// ImportOutput is the payload of a successful import.
type ImportOutput struct {
	Source      string       `json:"source"`
	Definitions []ir.TypeDef `json:"definitions"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import <file.cue|->",
		Short: "Convert CUE definitions back to type definitions",
		Long: `Read CUE definitions of the form written by "tdl export --to cue"
and print them as type definitions.

Each top-level #Name: { field: type } becomes "type Name { field: type, }".
A field value of _ becomes an untyped field.

Examples:
  tdl import shapes.cue
  tdl import shapes.cue -o shapes.tdl`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], output, cmd)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write type definitions to this file")

	return cmd
}

func runImport(opts *RootOptions, path, output string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	name := path
	var data []byte
	var err error
	if path == "-" {
		name = StdinName
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return outputCommandError(formatter, ErrCodeNotFound, fmt.Sprintf("path not found: %s", path))
		}
		return outputCommandError(formatter, ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", name, err))
	}

	defs, err := compiler.CompileCUE(name, data)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeImport, err.Error(), nil)
	}
	formatter.VerboseLog("Imported %d definition(s) from %s", len(defs), name)

	text := renderSource(defs)
	if output != "" {
		if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			return outputCommandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(ImportOutput{Source: name, Definitions: defs})
	}
	if output != "" {
		fmt.Fprintf(formatter.Writer, "✓ Wrote %d definition(s) to %s\n", len(defs), output)
		return nil
	}
	_, err = io.WriteString(formatter.Writer, text)
	return err
}

// renderSource writes one definition per line in source syntax.
func renderSource(defs []ir.TypeDef) string {
	var b strings.Builder
	for _, def := range defs {
		b.WriteString(def.String())
		b.WriteByte('\n')
	}
	return b.String()
}
