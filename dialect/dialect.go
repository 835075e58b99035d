package dialect

import (
	"context"
	"fmt"

	"ariga.io/atlas/sql/schema"

	"github.com/syssam/orm/schema/field"
)

// Dialect names for external usage.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// ExecQuerier wraps the 2 database operations.
type ExecQuerier interface {
	// Exec executes a query that does not return records. For example, in SQL, INSERT or UPDATE.
	// It scans the result into the pointer v. For SQL drivers, it is dialect/sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows, typically a SELECT in SQL.
	// It scans the result into the pointer v. For SQL drivers, it is *dialect/sql.Rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all necessary operations for executing
// compiled statements.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	// The provided context is used until the transaction is committed or rolled back.
	Tx(context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps the Exec and Query operations in transaction.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}

// TypeCode is the standard SQL type code assigned to a column.
type TypeCode int

// SQL type codes.
const (
	Null TypeCode = iota
	Boolean
	SmallInt
	Integer
	BigInt
	Real
	Double
	Decimal
	Char
	Varchar
	Clob
	Binary
	Blob
	Date
	Time
	Timestamp
	UUID
	JSON
)

var typeCodeNames = [...]string{
	Null:      "NULL",
	Boolean:   "BOOLEAN",
	SmallInt:  "SMALLINT",
	Integer:   "INTEGER",
	BigInt:    "BIGINT",
	Real:      "REAL",
	Double:    "DOUBLE",
	Decimal:   "DECIMAL",
	Char:      "CHAR",
	Varchar:   "VARCHAR",
	Clob:      "CLOB",
	Binary:    "BINARY",
	Blob:      "BLOB",
	Date:      "DATE",
	Time:      "TIME",
	Timestamp: "TIMESTAMP",
	UUID:      "UUID",
	JSON:      "JSON",
}

// String returns the SQL name of the type code.
func (c TypeCode) String() string {
	if c >= 0 && int(c) < len(typeCodeNames) {
		return typeCodeNames[c]
	}
	return fmt.Sprintf("TYPE(%d)", int(c))
}

// IdentityKind is the physical mechanism used to generate identifier values.
type IdentityKind int

// Identity kinds. IdentityNone is carried by non-identifier columns.
const (
	IdentityNone IdentityKind = iota
	IdentityManual
	IdentitySequence
	IdentityAutoIncrement
	IdentityTableGenerator
)

var identityNames = [...]string{
	IdentityNone:           "none",
	IdentityManual:         "manual",
	IdentitySequence:       "sequence",
	IdentityAutoIncrement:  "auto_increment",
	IdentityTableGenerator: "table",
}

// String returns the identity kind name.
func (k IdentityKind) String() string {
	if k >= 0 && int(k) < len(identityNames) {
		return identityNames[k]
	}
	return fmt.Sprintf("identity(%d)", int(k))
}

// Generated reports whether values of this kind are produced by the database.
func (k IdentityKind) Generated() bool {
	return k == IdentitySequence || k == IdentityAutoIncrement || k == IdentityTableGenerator
}

// Adaptor describes the capabilities of a database dialect: which SQL types
// hold which value types, which identity strategies are available, and how
// identifiers and string constants are written.
type Adaptor interface {
	// Dialect returns the dialect name.
	Dialect() string
	// SQLType returns the type code storing values of t. The boolean is false
	// when no mapping exists.
	SQLType(t field.Type, temporal field.Temporal, lob bool) (TypeCode, bool)
	// IdentityKind resolves a declared generation strategy. The boolean is
	// false when the dialect cannot fulfill it.
	IdentityKind(s field.GenerationType) (IdentityKind, bool)
	// ColumnType returns the schema type of a column with the given code.
	ColumnType(code TypeCode, size int64) schema.Type
	// FormatType returns the DDL spelling of a schema type.
	FormatType(t schema.Type) (string, error)
	// QuoteIdent quotes an identifier.
	QuoteIdent(s string) string
	// QuoteString quotes a string constant.
	QuoteString(s string) string
}
