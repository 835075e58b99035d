package criteria

import (
	"strconv"

	"github.com/syssam/orm"
	"github.com/syssam/orm/metamodel"
)

// From is an entity source of a query: a root or a join.
type From interface {
	Expr
	// Entity returns the entity type of the source.
	Entity() *metamodel.EntityType
	// Var returns the identification variable of the source.
	Var() string
}

// Root is an entity listed in the FROM clause.
type Root struct {
	et *metamodel.EntityType
	v  string
}

// NewRoot returns a root over et, identified by v in the query language.
func NewRoot(et *metamodel.EntityType, v string) *Root {
	return &Root{et: et, v: v}
}

// Entity implements From.
func (r *Root) Entity() *metamodel.EntityType { return r.et }

// Var implements From.
func (r *Root) Var() string { return r.v }

// QL implements Expr.
func (r *Root) QL(*Context) string { return r.v }

// SQL implements Expr. It renders one fragment per identifier column.
func (r *Root) SQL(ctx *Context) []string { return idColumns(ctx, r) }

// Select implements Expr. A selected root yields all mapped columns.
func (r *Root) Select(ctx *Context, selected bool) []string {
	return selectEntity(ctx, r, selected)
}

// Extract implements Expression.
func (r *Root) Extract(row Row, q *CompiledQuery) (Record, error) {
	return extractEntity(row, q, r)
}

func (*Root) expr() {}

// JoinKind is the kind of a join.
type JoinKind uint8

// Join kinds.
const (
	InnerJoin JoinKind = iota
	LeftJoin
)

// Join is an entity joined to the FROM clause.
type Join struct {
	kind JoinKind
	et   *metamodel.EntityType
	v    string
	on   Predicate
}

// NewJoin returns a join over et, identified by v in the query language.
func NewJoin(kind JoinKind, et *metamodel.EntityType, v string) *Join {
	return &Join{kind: kind, et: et, v: v}
}

// On sets the join condition.
func (j *Join) On(p Predicate) *Join {
	j.on = p
	return j
}

// Entity implements From.
func (j *Join) Entity() *metamodel.EntityType { return j.et }

// Var implements From.
func (j *Join) Var() string { return j.v }

// QL implements Expr.
func (j *Join) QL(*Context) string { return j.v }

// SQL implements Expr. It renders one fragment per identifier column.
func (j *Join) SQL(ctx *Context) []string { return idColumns(ctx, j) }

// Select implements Expr. A selected join yields all mapped columns.
func (j *Join) Select(ctx *Context, selected bool) []string {
	return selectEntity(ctx, j, selected)
}

// Extract implements Expression.
func (j *Join) Extract(row Row, q *CompiledQuery) (Record, error) {
	return extractEntity(row, q, j)
}

func (*Join) expr() {}

// clauseQL renders the join clause in the query language.
func (j *Join) clauseQL(ctx *Context) string {
	s := "join "
	if j.kind == LeftJoin {
		s = "left join "
	}
	s += j.et.Name() + " " + j.v
	if j.on != nil {
		s += " on " + j.on.QL(ctx)
	}
	return s
}

// clauseSQL renders the join clause.
func (j *Join) clauseSQL(ctx *Context) string {
	s := "JOIN "
	if j.kind == LeftJoin {
		s = "LEFT JOIN "
	}
	s += ctx.Ident(j.et.Table()) + " " + ctx.TableAlias(j)
	if j.on == nil {
		ctx.Errorf("join %s %s without ON condition", j.et.Name(), j.v)
		return s
	}
	return s + " ON " + j.on.SQL(ctx)[0]
}

func idColumns(ctx *Context, f From) []string {
	ids := f.Entity().IDs()
	frags := make([]string, len(ids))
	t := ctx.TableAlias(f)
	for i, a := range ids {
		frags[i] = t + "." + ctx.Ident(a.Column().Name)
	}
	return frags
}

func selectEntity(ctx *Context, f From, selected bool) []string {
	if !selected {
		return idColumns(ctx, f)
	}
	var (
		t     = ctx.TableAlias(f)
		alias = ctx.Alias(f)
		attrs = f.Entity().Attributes()
		frags = make([]string, len(attrs))
	)
	for i, a := range attrs {
		frags[i] = ctx.as(t+"."+ctx.Ident(a.Column().Name), entityColumn(alias, i))
	}
	return frags
}

func extractEntity(row Row, q *CompiledQuery, f From) (Record, error) {
	alias, ok := q.Alias(f)
	if !ok {
		return nil, orm.NewMissingAliasError(f.Var())
	}
	attrs := f.Entity().Attributes()
	rec := make(Record, len(attrs))
	for i, a := range attrs {
		v, err := row.Value(entityColumn(alias, i))
		if err != nil {
			return nil, err
		}
		rec[a.Name()] = v
	}
	return rec, nil
}

// entityColumn returns the result alias of the i-th column of an entity
// selected under alias.
func entityColumn(alias string, i int) string {
	return alias + "_" + strconv.Itoa(i)
}
