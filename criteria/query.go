package criteria

// Query is a criteria query definition. Its methods modify the query in
// place and return it for chaining.
type Query struct {
	distinct bool
	selects  []Expr
	roots    []*Root
	joins    []*Join
	where    []Predicate
	groupBy  []Expr
	having   []Predicate
	orderBy  []Order
}

// Select returns a query selecting exprs, in order.
func Select(exprs ...Expr) *Query {
	return &Query{selects: exprs}
}

// Distinct removes duplicate result rows.
func (q *Query) Distinct() *Query {
	q.distinct = true
	return q
}

// From appends entity roots to the FROM clause.
func (q *Query) From(roots ...*Root) *Query {
	q.roots = append(q.roots, roots...)
	return q
}

// Join appends joins to the FROM clause.
func (q *Query) Join(joins ...*Join) *Query {
	q.joins = append(q.joins, joins...)
	return q
}

// Where appends restrictions. Multiple restrictions are conjoined.
func (q *Query) Where(ps ...Predicate) *Query {
	q.where = append(q.where, ps...)
	return q
}

// GroupBy appends grouping expressions.
func (q *Query) GroupBy(exprs ...Expr) *Query {
	q.groupBy = append(q.groupBy, exprs...)
	return q
}

// Having appends group restrictions. Multiple restrictions are conjoined.
func (q *Query) Having(ps ...Predicate) *Query {
	q.having = append(q.having, ps...)
	return q
}

// OrderBy appends ordering terms.
func (q *Query) OrderBy(orders ...Order) *Query {
	q.orderBy = append(q.orderBy, orders...)
	return q
}

// Order is an ordering term.
type Order struct {
	expr Expr
	desc bool
}

// Asc orders by e ascending.
func Asc(e Expr) Order { return Order{expr: e} }

// Desc orders by e descending.
func Desc(e Expr) Order { return Order{expr: e, desc: true} }
