package criteria

import "strings"

// CoalesceExpr evaluates to its first non-null argument, left to right.
type CoalesceExpr[T any] struct {
	args []Expression[T]
}

// Coalesce returns the coalesce of x, y and more, in that order.
func Coalesce[T any](x, y Expression[T], more ...Expression[T]) *CoalesceExpr[T] {
	args := make([]Expression[T], 0, 2+len(more))
	args = append(args, x, y)
	return &CoalesceExpr[T]{args: append(args, more...)}
}

// Value appends the expression e as the next argument.
func (c *CoalesceExpr[T]) Value(e Expression[T]) *CoalesceExpr[T] {
	c.args = append(c.args, e)
	return c
}

// Const appends the constant v as the next argument.
func (c *CoalesceExpr[T]) Const(v T) *CoalesceExpr[T] {
	return c.Value(Lit(v))
}

// Args returns the arguments in order.
func (c *CoalesceExpr[T]) Args() []Expression[T] { return c.args }

// QL implements Expr.
func (c *CoalesceExpr[T]) QL(ctx *Context) string {
	parts := make([]string, len(c.args))
	for i, a := range c.args {
		parts[i] = a.QL(ctx)
	}
	return "coalesce(" + strings.Join(parts, ", ") + ")"
}

// SQL implements Expr.
func (c *CoalesceExpr[T]) SQL(ctx *Context) []string {
	ctx.Alias(c)
	var parts []string
	for _, a := range c.args {
		frags := a.SQL(ctx)
		if len(frags) != 1 {
			ctx.Errorf("coalesce argument %s renders %d columns", describe(a), len(frags))
		}
		parts = append(parts, frags...)
	}
	return []string{"COALESCE(" + strings.Join(parts, ", ") + ")"}
}

// Select implements Expr.
func (c *CoalesceExpr[T]) Select(ctx *Context, selected bool) []string {
	return selectOne(ctx, c, selected)
}

// Extract implements Expression.
func (c *CoalesceExpr[T]) Extract(row Row, q *CompiledQuery) (T, error) {
	return extract[T](row, q, c)
}

func (*CoalesceExpr[T]) expr() {}
