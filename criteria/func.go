package criteria

import (
	"strings"
)

// FuncExpr is a call of a scalar or aggregate SQL function.
type FuncExpr[T any] struct {
	name string
	args []Expr
}

// Func returns a call of the named function. The name is rendered lower
// case in the query language and upper case in SQL.
func Func[T any](name string, args ...Expr) *FuncExpr[T] {
	return &FuncExpr[T]{name: name, args: args}
}

// Lower returns lower(x).
func Lower(x Expression[string]) *FuncExpr[string] { return Func[string]("lower", x) }

// Upper returns upper(x).
func Upper(x Expression[string]) *FuncExpr[string] { return Func[string]("upper", x) }

// Length returns length(x).
func Length(x Expression[string]) *FuncExpr[int64] { return Func[int64]("length", x) }

// Abs returns abs(x).
func Abs[T any](x Expression[T]) *FuncExpr[T] { return Func[T]("abs", x) }

// Count returns count(x). Counting an entity with a composite identifier
// renders COUNT(*).
func Count(x Expr) *FuncExpr[int64] { return Func[int64]("count", x) }

// Sum returns sum(x).
func Sum[T any](x Expression[T]) *FuncExpr[T] { return Func[T]("sum", x) }

// Avg returns avg(x).
func Avg(x Expr) *FuncExpr[float64] { return Func[float64]("avg", x) }

// Min returns min(x).
func Min[T any](x Expression[T]) *FuncExpr[T] { return Func[T]("min", x) }

// Max returns max(x).
func Max[T any](x Expression[T]) *FuncExpr[T] { return Func[T]("max", x) }

// Name returns the function name.
func (f *FuncExpr[T]) Name() string { return f.name }

// QL implements Expr.
func (f *FuncExpr[T]) QL(ctx *Context) string {
	return strings.ToLower(f.name) + "(" + joinQL(ctx, f.args, ", ") + ")"
}

// SQL implements Expr.
func (f *FuncExpr[T]) SQL(ctx *Context) []string {
	ctx.Alias(f)
	name := strings.ToUpper(f.name)
	var parts []string
	for _, a := range f.args {
		frags := a.SQL(ctx)
		if len(frags) != 1 {
			if name != "COUNT" {
				ctx.Errorf("argument %s of %s renders %d columns", describe(a), f.name, len(frags))
			}
			frags = []string{"*"}
		}
		parts = append(parts, frags...)
	}
	return []string{name + "(" + strings.Join(parts, ", ") + ")"}
}

// Select implements Expr.
func (f *FuncExpr[T]) Select(ctx *Context, selected bool) []string {
	return selectOne(ctx, f, selected)
}

// Extract implements Expression.
func (f *FuncExpr[T]) Extract(row Row, q *CompiledQuery) (T, error) {
	return extract[T](row, q, f)
}

func (*FuncExpr[T]) expr() {}
