package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tdl/internal/parse"
)

// DemoIdentInput is parsed by `tdl ident` when no text is given.
const DemoIdentInput = " asdf "

// IdentOutput is the result of parsing one identifier.
type IdentOutput struct {
	Input     string `json:"input"`
	Ident     string `json:"ident"`
	Remaining string `json:"remaining"`
}

// NewIdentCommand creates the ident command.
func NewIdentCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ident [text]",
		Short: "Parse one identifier",
		Long: `Parse a single identifier, with surrounding spaces, from text.

With no argument the demonstration input " asdf " is parsed.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := DemoIdentInput
			if len(args) == 1 {
				input = args[0]
			}
			return runIdent(rootOpts, input, cmd)
		},
	}

	return cmd
}

func runIdent(opts *RootOptions, input string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ident, rest, err := parse.ParseIdent(input)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeSyntax, err.Error(), map[string]any{"input": input})
	}

	out := IdentOutput{Input: input, Ident: ident, Remaining: rest}
	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	fmt.Fprintf(formatter.Writer, "%q -> %q (remaining %q)\n", out.Input, out.Ident, out.Remaining)
	return nil
}
