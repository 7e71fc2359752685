package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tdl/internal/store"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	Database string
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog [name]",
		Short: "Inspect recorded parse runs",
		Long: `List the runs recorded by "tdl parse --db", or show the latest
recorded definition with the given name.

Examples:
  tdl catalog --db ./tdl.db
  tdl catalog Point --db ./tdl.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runCatalog(opts, name, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite catalog (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runCatalog(opts *CatalogOptions, name string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := openCatalog(opts.RootOptions, opts.Database, formatter, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if name == "" {
		return listRuns(ctx, formatter, st)
	}
	return showTypeDef(ctx, formatter, st, name)
}

// openCatalog opens an existing catalog. Errors are already reported
// through formatter.
func openCatalog(opts *RootOptions, dbPath string, formatter *OutputFormatter, cmd *cobra.Command) (*store.Store, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, outputCommandError(formatter, ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath))
	}

	st, err := store.Open(dbPath, store.WithLogger(opts.Logger(cmd.ErrOrStderr())))
	if err != nil {
		return nil, outputCommandError(formatter, ErrCodeCatalog, fmt.Sprintf("opening catalog: %v", err))
	}
	return st, nil
}

func listRuns(ctx context.Context, formatter *OutputFormatter, st *store.Store) error {
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return outputCommandError(formatter, ErrCodeCatalog, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{"runs": runs})
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(formatter.Writer, "%4d  %s  %s (%d definition(s))\n", run.Seq, run.ID, run.Source, run.Count)
	}
	return nil
}

func showTypeDef(ctx context.Context, formatter *OutputFormatter, st *store.Store, name string) error {
	def, err := st.LookupTypeDef(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return formatter.Fail(ExitFailure, ErrCodeCatalogMissing, err.Error(), nil)
	}
	if err != nil {
		return outputCommandError(formatter, ErrCodeCatalog, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(def)
	}
	fmt.Fprintln(formatter.Writer, def.Def)
	fmt.Fprintf(formatter.Writer, "  id:  %s\n  run: %s, position %d\n", def.ID, def.RunID, def.Seq)
	return nil
}
