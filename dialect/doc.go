// Package dialect provides database dialect abstraction for the ORM core.
//
// This package defines the interfaces and types used for database-specific
// operations: executing compiled statements, and the capability rules that
// decide how attributes are stored.
//
// # Supported Dialects
//
// The following dialects are supported:
//
//   - Postgres: PostgreSQL database
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Adaptor Interface
//
// An Adaptor answers the questions the metamodel asks while mapping
// attributes to columns:
//
//	code, ok := adaptor.SQLType(field.TypeTime, field.TemporalDate, false) // dialect.Date
//	kind, ok := adaptor.IdentityKind(field.GenerationSequence)            // dialect.IdentitySequence
//	ddl, err := adaptor.FormatType(adaptor.ColumnType(code, 0))           // "date"
//
// Implementations for the supported dialects live in dialect/sql.
//
// # Driver Interface
//
// The Driver interface executes compiled statements:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Usage
//
//	import (
//	    "github.com/syssam/orm/dialect"
//	    "github.com/syssam/orm/dialect/sql"
//	)
//
//	db, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
package dialect
