package criteria

import (
	"fmt"
	"strconv"

	"github.com/syssam/orm/dialect"
)

// Context holds the state of one compile pass: the adaptor used for
// quoting, the result aliases assigned so far and the errors found while
// rendering. A Context is confined to a single goroutine.
type Context struct {
	adaptor   dialect.Adaptor
	quote     bool
	aliases   map[Expr]string
	next      int
	tables    map[From]string
	nextTable int
	sealed    bool
	columns   []string
	errs      []error
}

// NewContext returns a fresh compile-pass context.
func NewContext(a dialect.Adaptor) *Context {
	return &Context{
		adaptor: a,
		aliases: make(map[Expr]string),
		tables:  make(map[From]string),
	}
}

// Alias returns the result alias of e, assigning the next one (c0, c1, ...)
// on first use. Later calls in the same pass return the same alias.
func (c *Context) Alias(e Expr) string {
	if a, ok := c.aliases[e]; ok {
		return a
	}
	a := "c" + strconv.Itoa(c.next)
	c.next++
	c.aliases[e] = a
	return a
}

// Aliased returns the alias of e without assigning one.
func (c *Context) Aliased(e Expr) (string, bool) {
	a, ok := c.aliases[e]
	return a, ok
}

// TableAlias returns the table alias of f (t0, t1, ...), assigned in FROM
// order on first use.
func (c *Context) TableAlias(f From) string {
	if a, ok := c.tables[f]; ok {
		return a
	}
	if c.sealed {
		c.Errorf("%s is not a source of the query", f.Var())
	}
	a := "t" + strconv.Itoa(c.nextTable)
	c.nextTable++
	c.tables[f] = a
	return a
}

// seal stops table alias assignment. Sources referenced after seal are
// reported as errors.
func (c *Context) seal() { c.sealed = true }

// Ident returns the identifier, quoted if the compiler quotes identifiers.
func (c *Context) Ident(s string) string {
	if c.quote && c.adaptor != nil {
		return c.adaptor.QuoteIdent(s)
	}
	return s
}

// AddError records an error found while rendering.
func (c *Context) AddError(err error) {
	c.errs = append(c.errs, err)
}

// Errorf records a formatted error found while rendering.
func (c *Context) Errorf(format string, args ...any) {
	c.AddError(fmt.Errorf("criteria: "+format, args...))
}

// Err returns the errors recorded in the pass.
func (c *Context) Err() []error { return c.errs }

// column records a selected result column.
func (c *Context) column(alias string) {
	c.columns = append(c.columns, alias)
}

// as renders a selected fragment under alias.
func (c *Context) as(frag, alias string) string {
	c.column(alias)
	return frag + " AS " + alias
}
