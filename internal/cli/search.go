package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tdl/internal/ir"
	"github.com/roach88/tdl/internal/parse"
	"github.com/roach88/tdl/internal/queryir"
	"github.com/roach88/tdl/internal/store"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Database string
	Name     string
	Source   string
	Fields   []string // "name" or "name: type"
	Untyped  []string // field names that must have no type
	Any      bool     // match any filter instead of all
	History  bool     // include superseded definitions
	Limit    int
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find recorded definitions by name, source or fields",
		Long: `Search the catalog written by "tdl parse --db".

Filters combine with AND unless --any is given. --field takes a field in
definition syntax: "x" matches a field x of any type, "x: f64" requires
the type. By default only the newest definition of each name is searched.

Examples:
  tdl search --db ./tdl.db --field "x: f64" --field y
  tdl search --db ./tdl.db --untyped label --history
  tdl search --db ./tdl.db --name Point --field z --any`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite catalog (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "type name")
	cmd.Flags().StringVar(&opts.Source, "source", "", "source the run was recorded from")
	cmd.Flags().StringArrayVar(&opts.Fields, "field", nil, `field the type declares ("name" or "name: type")`)
	cmd.Flags().StringArrayVar(&opts.Untyped, "untyped", nil, "untyped field the type declares")
	cmd.Flags().BoolVar(&opts.Any, "any", false, "match definitions satisfying any filter")
	cmd.Flags().BoolVar(&opts.History, "history", false, "include definitions superseded by later runs")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of results (0 = no limit)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// SearchOutput is the payload of a search.
type SearchOutput struct {
	Matches []store.StoredTypeDef `json:"matches"`
}

func runSearch(opts *SearchOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	query, err := buildSearchQuery(opts)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error())
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

	matches, err := st.Search(ctx, query)
	if err != nil {
		return outputCommandError(formatter, ErrCodeCatalog, err.Error())
	}
	formatter.VerboseLog("Search matched %d definition(s)", len(matches))

	if formatter.Format == "json" {
		return formatter.Success(SearchOutput{Matches: matches})
	}
	if len(matches) == 0 {
		fmt.Fprintln(formatter.Writer, "No matching definitions.")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(formatter.Writer, "%s  (run %s, position %d)\n", m.Def, m.RunID, m.Seq)
	}
	return nil
}

// buildSearchQuery converts flags to a catalog query.
func buildSearchQuery(opts *SearchOptions) (queryir.Select, error) {
	var preds []queryir.Predicate
	if opts.Name != "" {
		preds = append(preds, queryir.Equals{Field: queryir.ColumnName, Value: ir.IRString(opts.Name)})
	}
	if opts.Source != "" {
		preds = append(preds, queryir.Equals{Field: queryir.ColumnSource, Value: ir.IRString(opts.Source)})
	}
	for _, arg := range opts.Fields {
		field, rest, err := parse.Run[ir.Field](parse.FieldRule, arg)
		if err != nil || rest != "" {
			return queryir.Select{}, fmt.Errorf("invalid --field %q: want \"name\" or \"name: type\"", arg)
		}
		preds = append(preds, queryir.HasField{Name: field.Name, Type: field.Type})
	}
	for _, name := range opts.Untyped {
		preds = append(preds, queryir.HasField{Name: name, Untyped: true})
	}

	q := queryir.Select{Latest: !opts.History, Limit: opts.Limit}
	switch {
	case len(preds) == 1:
		q.Filter = preds[0]
	case len(preds) > 1 && opts.Any:
		q.Filter = queryir.Or{Predicates: preds}
	case len(preds) > 1:
		q.Filter = queryir.And{Predicates: preds}
	}

	if err := queryir.Validate(q).Err(); err != nil {
		return queryir.Select{}, err
	}
	return q, nil
}
