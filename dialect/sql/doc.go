// Package sql implements the dialect abstractions on top of database/sql.
//
// # Adaptors
//
// NewAdaptor returns the capability rules of a SQL dialect. The adaptor
// decides which SQL type code stores a field type, which identity kinds a
// generation strategy resolves to, and how identifiers and strings are
// quoted:
//
//	a, _ := sql.NewAdaptor(dialect.Postgres)
//	a.SQLType(field.TypeString, field.TemporalNone, true) // dialect.Clob
//	a.IdentityKind(field.GenerationAuto)                  // dialect.IdentitySequence
//	a.QuoteString("anon")                                 // 'anon'
//
// Column types are atlas schema types, so they can be formatted as DDL or
// fed to atlas tables:
//
//	ddl, _ := a.FormatType(a.ColumnType(dialect.Varchar, 64))
//
// # Driver
//
// Driver wraps *sql.DB and executes compiled statements:
//
//	drv, err := sql.Open(dialect.Postgres, dsn, sql.WithLogger(logger))
//	rows := &sql.Rows{}
//	if err := drv.Query(ctx, q.SQL(), []any{}, rows); err != nil {
//	    return err
//	}
//	result, err := sql.ScanRows(rows)
//
// # Rows
//
// ScanRow and ScanRows materialize result rows keyed by column alias. A Row
// is the accessor read by compiled expressions when extracting values.
//
// # Errors
//
// Driver errors caused by values that do not fit their SQL type (Postgres
// class 22 data exceptions, MySQL out-of-range and incorrect-value errors,
// database/sql conversion errors) are wrapped with orm.TypeMismatchError.
package sql
