package criteria

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/syssam/orm"
	"github.com/syssam/orm/dialect"
)

// Expr is a node of a criteria tree.
//
// This is a sealed interface - only types in this package implement it.
//
// Expr types:
//   - Literal: a constant value
//   - Path: an attribute of a root or join
//   - CoalesceExpr: the first non-null of its arguments
//   - FuncExpr: a scalar or aggregate function call
//   - Comparison, Junction, Not: predicates
//   - Root, Join: entity sources of a query
type Expr interface {
	// QL renders the node in the query language. It does not change the
	// context.
	QL(*Context) string
	// SQL renders the node as SQL fragments: one for single-valued nodes,
	// one per identifier column for entity sources.
	SQL(*Context) []string
	// Select renders the node as select-list items. Selected fragments are
	// suffixed with their result alias; unselected output equals SQL.
	Select(ctx *Context, selected bool) []string

	expr() // Marker method - seals interface to this package
}

// Expression is an Expr whose result values have type T.
type Expression[T any] interface {
	Expr
	// Extract reads the value of the node from a result row of q.
	Extract(row Row, q *CompiledQuery) (T, error)
}

// Row is the accessor for result values, keyed by result alias.
type Row interface {
	Value(alias string) (any, error)
}

// Record is an entity result row keyed by attribute name.
type Record map[string]any

// Literal is a constant value.
type Literal[T any] struct {
	v T
}

// Lit returns a literal holding v.
func Lit[T any](v T) *Literal[T] {
	return &Literal[T]{v: v}
}

// Value returns the constant.
func (l *Literal[T]) Value() T { return l.v }

// QL implements Expr.
func (l *Literal[T]) QL(*Context) string { return qlLiteral(l.v) }

// SQL implements Expr.
func (l *Literal[T]) SQL(ctx *Context) []string { return []string{sqlLiteral(ctx, l.v)} }

// Select implements Expr.
func (l *Literal[T]) Select(ctx *Context, selected bool) []string {
	return selectOne(ctx, l, selected)
}

// Extract implements Expression.
func (l *Literal[T]) Extract(row Row, q *CompiledQuery) (T, error) {
	return extract[T](row, q, l)
}

func (*Literal[T]) expr() {}

// Path is an attribute of an entity source.
type Path[T any] struct {
	from From
	name string
}

// Attr returns the path to the named attribute of from.
func Attr[T any](from From, name string) *Path[T] {
	return &Path[T]{from: from, name: name}
}

// Name returns the attribute name.
func (p *Path[T]) Name() string { return p.name }

// QL implements Expr.
func (p *Path[T]) QL(*Context) string { return p.from.Var() + "." + p.name }

// SQL implements Expr.
func (p *Path[T]) SQL(ctx *Context) []string {
	attr := p.from.Entity().Attribute(p.name)
	if attr == nil {
		ctx.Errorf("unknown attribute %q of %s", p.name, p.from.Entity().Name())
		return []string{p.name}
	}
	return []string{ctx.TableAlias(p.from) + "." + ctx.Ident(attr.Column().Name)}
}

// Select implements Expr.
func (p *Path[T]) Select(ctx *Context, selected bool) []string {
	return selectOne(ctx, p, selected)
}

// Extract implements Expression.
func (p *Path[T]) Extract(row Row, q *CompiledQuery) (T, error) {
	return extract[T](row, q, p)
}

func (*Path[T]) expr() {}

// selectOne renders a single-valued node, aliased if selected.
func selectOne(ctx *Context, e Expr, selected bool) []string {
	frags := e.SQL(ctx)
	if !selected {
		return frags
	}
	if len(frags) != 1 {
		ctx.Errorf("cannot select %s: %d columns", describe(e), len(frags))
		return frags
	}
	return []string{ctx.as(frags[0], ctx.Alias(e))}
}

// extract reads the value of a single-valued node.
func extract[T any](row Row, q *CompiledQuery, e Expr) (T, error) {
	var zero T
	alias, ok := q.Alias(e)
	if !ok {
		return zero, orm.NewMissingAliasError(describe(e))
	}
	v, err := row.Value(alias)
	if err != nil {
		return zero, err
	}
	return convert[T](alias, v)
}

// describe renders e in the query language for error messages.
func describe(e Expr) string {
	return e.QL(&Context{})
}

// joinQL renders nodes in the query language, separated by sep.
func joinQL(ctx *Context, es []Expr, sep string) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.QL(ctx)
	}
	return strings.Join(parts, sep)
}

// joinSQL renders nodes as SQL, separated by sep.
func joinSQL(ctx *Context, es []Expr, sep string) string {
	var parts []string
	for _, e := range es {
		parts = append(parts, e.SQL(ctx)...)
	}
	return strings.Join(parts, sep)
}

func qlLiteral(v any) string {
	v = literalValue(v)
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return "'" + v.UTC().Format(time.RFC3339Nano) + "'"
	case uuid.UUID:
		return "'" + v.String() + "'"
	case *apd.Decimal:
		if v == nil {
			return "null"
		}
		return v.Text('f')
	case []byte:
		return "X'" + hex.EncodeToString(v) + "'"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if isNumber(v) {
		return fmt.Sprint(v)
	}
	return qlLiteral(fmt.Sprint(v))
}

func sqlLiteral(ctx *Context, v any) string {
	quote := func(s string) string {
		if ctx.adaptor == nil {
			return "'" + strings.ReplaceAll(s, "'", "''") + "'"
		}
		return ctx.adaptor.QuoteString(s)
	}
	v = literalValue(v)
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quote(v)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		return quote(v.UTC().Format("2006-01-02 15:04:05.999999999"))
	case uuid.UUID:
		return quote(v.String())
	case *apd.Decimal:
		if v == nil {
			return "NULL"
		}
		return v.Text('f')
	case []byte:
		if ctx.adaptor != nil && ctx.adaptor.Dialect() == dialect.Postgres {
			return `'\x` + hex.EncodeToString(v) + "'"
		}
		return "X'" + hex.EncodeToString(v) + "'"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if isNumber(v) {
		return fmt.Sprint(v)
	}
	return quote(fmt.Sprint(v))
}

// literalValue dereferences pointer literals and resolves driver.Valuer
// values. Nil pointers render as NULL. Decimals are kept as pointers.
func literalValue(v any) any {
	for {
		if _, ok := v.(*apd.Decimal); ok {
			return v
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil
			}
			v = rv.Elem().Interface()
			continue
		}
		if dv, ok := v.(driver.Valuer); ok {
			if x, err := dv.Value(); err == nil {
				return x
			}
		}
		return v
	}
}

func isNumber(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
