package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/orm/criteria"
)

// QueryOptions holds the flags of the query command.
type QueryOptions struct {
	Entity   string
	Select   []string
	Default  string
	IsNull   []string
	OrderBy  []string
	Distinct bool
	Quote    bool
}

// QueryInfo is the compiled form of a query.
type QueryInfo struct {
	QL      string   `json:"ql"`
	SQL     string   `json:"sql"`
	Columns []string `json:"columns"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}
	cmd := &cobra.Command{
		Use:   "query <file>",
		Short: "Compile a criteria query over one entity",
		Long: `Compile a criteria query over one entity and print its query-language
text, SQL and result columns.

Without --select the whole entity is selected. With --default every
selected attribute is wrapped in a coalesce with the given constant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, opts, cmd, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.Entity, "entity", "e", "", "entity to query (required)")
	cmd.Flags().StringSliceVarP(&opts.Select, "select", "s", nil, "attributes to select")
	cmd.Flags().StringVar(&opts.Default, "default", "", "coalesce selected attributes with this constant")
	cmd.Flags().StringSliceVar(&opts.IsNull, "null", nil, "restrict to rows where these attributes are null")
	cmd.Flags().StringSliceVar(&opts.OrderBy, "order", nil, "attributes to order by, suffix with :desc for descending")
	cmd.Flags().BoolVar(&opts.Distinct, "distinct", false, "remove duplicate rows")
	cmd.Flags().BoolVar(&opts.Quote, "quote", false, "quote identifiers")
	_ = cmd.MarkFlagRequired("entity")
	return cmd
}

func runQuery(rootOpts *RootOptions, opts *QueryOptions, cmd *cobra.Command, path string) error {
	m, err := loadMetamodel(rootOpts, path, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	et := m.Entity(opts.Entity)
	if et == nil {
		return WrapExitError(ExitFailure, "query", fmt.Errorf("unknown entity %q", opts.Entity))
	}
	root := criteria.NewRoot(et, strings.ToLower(et.Name()[:1]))
	var selects []criteria.Expr
	for _, name := range opts.Select {
		var e criteria.Expression[any] = criteria.Attr[any](root, name)
		if opts.Default != "" {
			e = criteria.Coalesce[any](e, criteria.Lit[any](opts.Default))
		}
		selects = append(selects, e)
	}
	if len(selects) == 0 {
		selects = append(selects, root)
	}
	q := criteria.Select(selects...).From(root)
	if opts.Distinct {
		q.Distinct()
	}
	for _, name := range opts.IsNull {
		q.Where(criteria.IsNull(criteria.Attr[any](root, name)))
	}
	for _, o := range opts.OrderBy {
		name, dir, _ := strings.Cut(o, ":")
		switch strings.ToLower(dir) {
		case "", "asc":
			q.OrderBy(criteria.Asc(criteria.Attr[any](root, name)))
		case "desc":
			q.OrderBy(criteria.Desc(criteria.Attr[any](root, name)))
		default:
			return WrapExitError(ExitCommandError, "query", fmt.Errorf("invalid order direction %q", dir))
		}
	}
	copts := []criteria.Option{criteria.WithLogger(rootOpts.logger(cmd.ErrOrStderr()))}
	if opts.Quote {
		copts = append(copts, criteria.WithQuotedIdentifiers())
	}
	cq, err := criteria.NewCompiler(m.Adaptor(), copts...).Compile(q)
	if err != nil {
		return WrapExitError(ExitFailure, "compile", err)
	}
	info := QueryInfo{QL: cq.QL(), SQL: cq.SQL(), Columns: cq.Columns()}
	if rootOpts.Format == "json" {
		return write(cmd.OutOrStdout(), "json", info, nil)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "QL:      %s\nSQL:     %s\nColumns: %s\n", info.QL, info.SQL, strings.Join(info.Columns, ", "))
	return err
}
