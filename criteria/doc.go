// Package criteria builds typed query expressions and compiles them into
// query-language text and dialect SQL.
//
// A criteria tree is made of Expr nodes: literals, attribute paths,
// coalesce and function calls, predicates, and the entity roots and joins
// they refer to. A Compiler renders a Query in two passes. The first pass
// produces the query-language text and has no side effects. The second
// pass produces SQL and assigns the result aliases (c0, c1, ...) and table
// aliases (t0, t1, ...) used to read values back from result rows.
//
//	u := criteria.NewRoot(m.Entity("User"), "u")
//	name := criteria.Coalesce[string](criteria.Attr[string](u, "nickname"), criteria.Lit("anon"))
//	q, err := criteria.NewCompiler(adaptor).Compile(criteria.Select(name).From(u))
//	if err != nil {
//	    return err
//	}
//	q.SQL() // SELECT COALESCE(t0.nickname, 'anon') AS c0 FROM users t0
//	v, err := name.Extract(row, q)
//
// As names a selection in the query-language select list. NULL-aware
// results are extracted through pointer or sql.Null targets.
//
// Aliases are kept by the CompiledQuery, keyed by node identity, so a node
// shared between several places of a tree is given one alias. Compilation
// does not modify nodes, and compiled queries are immutable. Builder
// methods such as CoalesceExpr.Value and Join.On are not synchronized.
package criteria
