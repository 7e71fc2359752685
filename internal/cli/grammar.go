package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tdl/internal/grammar"
	"github.com/roach88/tdl/internal/ir"
)

// NewGrammarCommand creates the grammar command.
func NewGrammarCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "grammar",
		Short:         "Print the definition grammar as EBNF",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format: rootOpts.Format,
				Writer: cmd.OutOrStdout(),
			}
			ebnf := grammar.EBNF()
			if formatter.Format == "json" {
				return formatter.Success(map[string]string{
					"grammar_version": ir.GrammarVersion,
					"tool_version":    ir.ToolVersion,
					"ebnf":            ebnf,
				})
			}
			fmt.Fprintln(formatter.Writer, ebnf)
			return nil
		},
	}
}
