package criteria

import (
	"regexp"
	"strings"
)

// Selection is a select-list item with a name in the query language.
type Selection[T any] struct {
	e    Expression[T]
	name string
}

// As names e in the query-language select list. The SQL result alias is
// still assigned by the compiler; CompiledQuery.Label maps name to it.
func As[T any](e Expression[T], name string) *Selection[T] {
	return &Selection[T]{e: e, name: name}
}

// Name returns the selection name.
func (s *Selection[T]) Name() string { return s.name }

// QL implements Expr. The name is only rendered in the select list.
func (s *Selection[T]) QL(ctx *Context) string { return s.e.QL(ctx) }

// SQL implements Expr.
func (s *Selection[T]) SQL(ctx *Context) []string { return s.e.SQL(ctx) }

// Select implements Expr.
func (s *Selection[T]) Select(ctx *Context, selected bool) []string {
	return s.e.Select(ctx, selected)
}

// Extract implements Expression.
func (s *Selection[T]) Extract(row Row, q *CompiledQuery) (T, error) {
	return s.e.Extract(row, q)
}

func (*Selection[T]) expr() {}

func (s *Selection[T]) label() string { return s.name }

func (s *Selection[T]) target() Expr {
	if l, ok := s.e.(labeled); ok {
		return l.target()
	}
	return s.e
}

// labeled is implemented by named selections.
type labeled interface {
	Expr
	label() string
	target() Expr
}

var labelRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// selectQL renders the select list in the query language, with the
// names of labeled selections.
func selectQL(ctx *Context, es []Expr) string {
	parts := make([]string, len(es))
	seen := make(map[string]bool)
	for i, e := range es {
		parts[i] = e.QL(ctx)
		l, ok := e.(labeled)
		if !ok {
			continue
		}
		name := l.label()
		switch {
		case !labelRE.MatchString(name):
			ctx.Errorf("invalid selection name %q", name)
		case seen[name]:
			ctx.Errorf("duplicate selection name %q", name)
		}
		seen[name] = true
		parts[i] += " as " + name
	}
	return strings.Join(parts, ", ")
}
