package criteria

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/syssam/orm"
	"github.com/syssam/orm/dialect"
)

// Compiler renders criteria queries into query-language text and SQL for
// one dialect. A Compiler holds no per-query state and is safe for
// concurrent use; each Compile call owns its Context.
type Compiler struct {
	adaptor dialect.Adaptor
	logger  *slog.Logger
	quote   bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger for compiled queries. Queries are logged at
// debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// WithQuotedIdentifiers quotes table and column names with the adaptor's
// identifier quoting.
func WithQuotedIdentifiers() Option {
	return func(c *Compiler) {
		c.quote = true
	}
}

// NewCompiler returns a compiler for the adaptor's dialect.
func NewCompiler(a dialect.Adaptor, opts ...Option) *Compiler {
	c := &Compiler{adaptor: a, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompiledQuery is the result of a compile pass. It is immutable and may
// be shared between goroutines.
type CompiledQuery struct {
	ql      string
	sql     string
	aliases map[Expr]string
	columns []string
	labels  map[string]string
}

// QL returns the query-language text.
func (q *CompiledQuery) QL() string { return q.ql }

// SQL returns the SQL statement.
func (q *CompiledQuery) SQL() string { return q.sql }

// Alias returns the result alias assigned to e.
func (q *CompiledQuery) Alias(e Expr) (string, bool) {
	a, ok := q.aliases[e]
	return a, ok
}

// Columns returns the result column aliases of the select list, in order.
func (q *CompiledQuery) Columns() []string { return slices.Clone(q.columns) }

// Label returns the result alias of the selection named by As.
func (q *CompiledQuery) Label(name string) (string, bool) {
	a, ok := q.labels[name]
	return a, ok
}

// Compile renders q. The query-language text is rendered first, without
// side effects; the SQL pass then assigns table and result aliases. All
// rendering errors are returned together.
func (c *Compiler) Compile(q *Query) (*CompiledQuery, error) {
	switch {
	case len(q.selects) == 0:
		return nil, errors.New("criteria: empty select list")
	case len(q.roots) == 0:
		return nil, errors.New("criteria: empty from clause")
	}
	qctx := &Context{}
	ql := c.ql(qctx, q)
	ctx := NewContext(c.adaptor)
	ctx.quote = c.quote
	for _, r := range q.roots {
		ctx.TableAlias(r)
	}
	for _, j := range q.joins {
		ctx.TableAlias(j)
	}
	ctx.seal()
	sql := c.sql(ctx, q)
	if err := orm.NewAggregateError(append(qctx.Err(), ctx.Err()...)...); err != nil {
		return nil, err
	}
	cq := &CompiledQuery{
		ql:      ql,
		sql:     sql,
		aliases: maps.Clone(ctx.aliases),
		columns: ctx.columns,
		labels:  make(map[string]string),
	}
	for _, e := range q.selects {
		if l, ok := e.(labeled); ok {
			cq.labels[l.label()], _ = ctx.Aliased(l.target())
		}
	}
	c.logger.Debug("query compiled", "ql", cq.ql, "sql", cq.sql, "columns", len(cq.columns))
	return cq, nil
}

func (c *Compiler) ql(ctx *Context, q *Query) string {
	var b strings.Builder
	b.WriteString("select ")
	if q.distinct {
		b.WriteString("distinct ")
	}
	b.WriteString(selectQL(ctx, q.selects))
	b.WriteString(" from ")
	for i, r := range q.roots {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.et.Name() + " " + r.v)
	}
	for _, j := range q.joins {
		b.WriteString(" " + j.clauseQL(ctx))
	}
	if len(q.where) > 0 {
		b.WriteString(" where " + where(q.where).QL(ctx))
	}
	if len(q.groupBy) > 0 {
		b.WriteString(" group by " + joinQL(ctx, q.groupBy, ", "))
	}
	if len(q.having) > 0 {
		b.WriteString(" having " + where(q.having).QL(ctx))
	}
	if len(q.orderBy) > 0 {
		parts := make([]string, len(q.orderBy))
		for i, o := range q.orderBy {
			parts[i] = o.expr.QL(ctx) + " asc"
			if o.desc {
				parts[i] = o.expr.QL(ctx) + " desc"
			}
		}
		b.WriteString(" order by " + strings.Join(parts, ", "))
	}
	return b.String()
}

func (c *Compiler) sql(ctx *Context, q *Query) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if q.distinct {
		b.WriteString("DISTINCT ")
	}
	var items []string
	for _, e := range q.selects {
		items = append(items, e.Select(ctx, true)...)
	}
	b.WriteString(strings.Join(items, ", "))
	b.WriteString(" FROM ")
	for i, r := range q.roots {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ctx.Ident(r.et.Table()) + " " + ctx.TableAlias(r))
	}
	for _, j := range q.joins {
		b.WriteString(" " + j.clauseSQL(ctx))
	}
	if len(q.where) > 0 {
		b.WriteString(" WHERE " + where(q.where).SQL(ctx)[0])
	}
	if len(q.groupBy) > 0 {
		b.WriteString(" GROUP BY " + joinSQL(ctx, q.groupBy, ", "))
	}
	if len(q.having) > 0 {
		b.WriteString(" HAVING " + where(q.having).SQL(ctx)[0])
	}
	if len(q.orderBy) > 0 {
		var parts []string
		for _, o := range q.orderBy {
			dir := " ASC"
			if o.desc {
				dir = " DESC"
			}
			for _, f := range o.expr.SQL(ctx) {
				parts = append(parts, f+dir)
			}
		}
		b.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}
	return b.String()
}
