package criteria

import (
	"strings"
)

// Predicate is a boolean-valued expression usable in WHERE, HAVING and
// ON clauses.
//
// This is a sealed interface - only types in this package implement it.
type Predicate interface {
	Expr
	pred() // Marker method - seals interface to this package
}

// Op is a comparison operator.
type Op uint8

// Comparison operators.
const (
	OpEQ Op = iota
	OpNEQ
	OpLT
	OpLTE
	OpGT
	OpGTE
	OpLike
	OpIsNull
	OpIsNotNull
)

var ops = [...]struct{ ql, sql string }{
	OpEQ:        {"=", "="},
	OpNEQ:       {"<>", "<>"},
	OpLT:        {"<", "<"},
	OpLTE:       {"<=", "<="},
	OpGT:        {">", ">"},
	OpGTE:       {">=", ">="},
	OpLike:      {"like", "LIKE"},
	OpIsNull:    {"is null", "IS NULL"},
	OpIsNotNull: {"is not null", "IS NOT NULL"},
}

// String returns the query-language spelling of the operator.
func (o Op) String() string { return ops[o].ql }

func (o Op) unary() bool { return o == OpIsNull || o == OpIsNotNull }

// Comparison compares two expressions, or tests one for NULL.
type Comparison struct {
	op          Op
	left, right Expr
}

// EQ returns the predicate x = y.
func EQ(x, y Expr) *Comparison { return &Comparison{op: OpEQ, left: x, right: y} }

// NEQ returns the predicate x <> y.
func NEQ(x, y Expr) *Comparison { return &Comparison{op: OpNEQ, left: x, right: y} }

// LT returns the predicate x < y.
func LT(x, y Expr) *Comparison { return &Comparison{op: OpLT, left: x, right: y} }

// LTE returns the predicate x <= y.
func LTE(x, y Expr) *Comparison { return &Comparison{op: OpLTE, left: x, right: y} }

// GT returns the predicate x > y.
func GT(x, y Expr) *Comparison { return &Comparison{op: OpGT, left: x, right: y} }

// GTE returns the predicate x >= y.
func GTE(x, y Expr) *Comparison { return &Comparison{op: OpGTE, left: x, right: y} }

// Like returns the predicate x LIKE pattern.
func Like(x Expression[string], pattern string) *Comparison {
	return &Comparison{op: OpLike, left: x, right: Lit(pattern)}
}

// IsNull returns the predicate x IS NULL.
func IsNull(x Expr) *Comparison { return &Comparison{op: OpIsNull, left: x} }

// IsNotNull returns the predicate x IS NOT NULL.
func IsNotNull(x Expr) *Comparison { return &Comparison{op: OpIsNotNull, left: x} }

// Op returns the comparison operator.
func (c *Comparison) Op() Op { return c.op }

// QL implements Expr.
func (c *Comparison) QL(ctx *Context) string {
	if c.op.unary() {
		return c.left.QL(ctx) + " " + c.op.String()
	}
	return c.left.QL(ctx) + " " + c.op.String() + " " + c.right.QL(ctx)
}

// SQL implements Expr. Composite operands are compared column by column.
func (c *Comparison) SQL(ctx *Context) []string {
	op := ops[c.op].sql
	left := c.left.SQL(ctx)
	if c.op.unary() {
		if len(left) == 1 {
			return []string{left[0] + " " + op}
		}
		parts := make([]string, len(left))
		for i, l := range left {
			parts[i] = l + " " + op
		}
		return []string{"(" + strings.Join(parts, " AND ") + ")"}
	}
	right := c.right.SQL(ctx)
	switch {
	case len(left) != len(right):
		ctx.Errorf("cannot compare %s (%d columns) with %s (%d columns)", describe(c.left), len(left), describe(c.right), len(right))
		return []string{strings.Join(left, ", ") + " " + op + " " + strings.Join(right, ", ")}
	case len(left) == 1:
		return []string{left[0] + " " + op + " " + right[0]}
	}
	sep := " AND "
	switch c.op {
	case OpEQ:
	case OpNEQ:
		sep = " OR "
	default:
		ctx.Errorf("operator %s is not supported on composite values", c.op)
	}
	parts := make([]string, len(left))
	for i := range left {
		parts[i] = left[i] + " " + op + " " + right[i]
	}
	return []string{"(" + strings.Join(parts, sep) + ")"}
}

// Select implements Expr.
func (c *Comparison) Select(ctx *Context, selected bool) []string {
	return selectPredicate(ctx, c, selected)
}

func (*Comparison) expr() {}
func (*Comparison) pred() {}

// Junction is a conjunction or disjunction of predicates.
type Junction struct {
	or    bool
	preds []Predicate
}

// And returns the conjunction of ps. An empty conjunction is true.
func And(ps ...Predicate) *Junction { return &Junction{preds: ps} }

// Or returns the disjunction of ps. An empty disjunction is false.
func Or(ps ...Predicate) *Junction { return &Junction{or: true, preds: ps} }

// Predicates returns the operands of the junction.
func (j *Junction) Predicates() []Predicate { return j.preds }

// QL implements Expr.
func (j *Junction) QL(ctx *Context) string {
	if len(j.preds) == 0 {
		if j.or {
			return "1 = 0"
		}
		return "1 = 1"
	}
	sep := " and "
	if j.or {
		sep = " or "
	}
	parts := make([]string, len(j.preds))
	for i, p := range j.preds {
		parts[i] = p.QL(ctx)
		if nested(p) {
			parts[i] = "(" + parts[i] + ")"
		}
	}
	return strings.Join(parts, sep)
}

// SQL implements Expr.
func (j *Junction) SQL(ctx *Context) []string {
	if len(j.preds) == 0 {
		if j.or {
			return []string{"1 = 0"}
		}
		return []string{"1 = 1"}
	}
	sep := " AND "
	if j.or {
		sep = " OR "
	}
	parts := make([]string, len(j.preds))
	for i, p := range j.preds {
		parts[i] = p.SQL(ctx)[0]
		if nested(p) {
			parts[i] = "(" + parts[i] + ")"
		}
	}
	return []string{strings.Join(parts, sep)}
}

// Select implements Expr.
func (j *Junction) Select(ctx *Context, selected bool) []string {
	return selectPredicate(ctx, j, selected)
}

func (*Junction) expr() {}
func (*Junction) pred() {}

// nested reports whether p must be parenthesized inside a junction.
func nested(p Predicate) bool {
	j, ok := p.(*Junction)
	return ok && len(j.preds) > 1
}

// NotExpr negates a predicate.
type NotExpr struct {
	p Predicate
}

// Not returns the negation of p.
func Not(p Predicate) *NotExpr { return &NotExpr{p: p} }

// QL implements Expr.
func (n *NotExpr) QL(ctx *Context) string { return "not (" + n.p.QL(ctx) + ")" }

// SQL implements Expr.
func (n *NotExpr) SQL(ctx *Context) []string {
	return []string{"NOT (" + n.p.SQL(ctx)[0] + ")"}
}

// Select implements Expr.
func (n *NotExpr) Select(ctx *Context, selected bool) []string {
	return selectPredicate(ctx, n, selected)
}

func (*NotExpr) expr() {}
func (*NotExpr) pred() {}

func selectPredicate(ctx *Context, p Predicate, selected bool) []string {
	frags := p.SQL(ctx)
	if selected {
		ctx.Errorf("predicate %s cannot be selected", describe(p))
	}
	return frags
}

// where folds a list of predicates into one.
func where(ps []Predicate) Predicate {
	if len(ps) == 1 {
		return ps[0]
	}
	return And(ps...)
}
