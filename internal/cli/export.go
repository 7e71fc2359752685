package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/tdl/internal/export"
	"github.com/roach88/tdl/internal/ir"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	To     string // export.FormatCUE | FormatYAML | FormatJSON
	Output string // file path; stdout when empty
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <file|dir|->",
		Short: "Render type definitions as CUE, YAML or JSON",
		Long: `Parse every type definition in the input and render them.

  cue  - one CUE definition per type (#Name: { field: type })
  yaml - a YAML list of definitions
  json - canonical JSON

Examples:
  tdl export shapes.tdl --to cue
  tdl export ./defs --to json -o defs.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", export.FormatCUE, fmt.Sprintf("export format %v", export.Formats))
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runExport(opts *ExportOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if !slices.Contains(export.Formats, opts.To) {
		return outputCommandError(formatter, ErrCodeRender,
			fmt.Sprintf("unknown export format %q: must be one of %v", opts.To, export.Formats))
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
	formatter.VerboseLog("Rendering %d definition(s) as %s", len(defs), opts.To)

	data, err := export.Render(opts.To, defs)
	if err != nil {
		return outputCommandError(formatter, ErrCodeRender, err.Error())
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, data, 0644); err != nil {
			return outputCommandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
		if formatter.Format == "json" {
			return formatter.Success(map[string]any{"output": opts.Output, "format": opts.To, "count": len(defs)})
		}
		fmt.Fprintf(formatter.Writer, "✓ Wrote %d definition(s) as %s to %s\n", len(defs), opts.To, opts.Output)
		return nil
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{"format": opts.To, "content": string(data)})
	}
	_, err = formatter.Writer.Write(data)
	return err
}
