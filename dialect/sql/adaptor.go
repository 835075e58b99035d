package sql

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"
	"github.com/lib/pq"

	"github.com/syssam/orm/dialect"
	"github.com/syssam/orm/schema/field"
)

// Default sizes used when a string or bytes column declares none.
const (
	DefaultStringSize = 255
	DefaultBinarySize = 255
)

// Adaptor implements dialect.Adaptor for the SQL dialects.
type Adaptor struct {
	dialect string
}

// NewAdaptor returns the adaptor for the given dialect name.
func NewAdaptor(name string) (*Adaptor, error) {
	switch name {
	case dialect.Postgres, dialect.MySQL, dialect.SQLite:
		return &Adaptor{dialect: name}, nil
	default:
		return nil, fmt.Errorf("dialect/sql: unsupported dialect %q", name)
	}
}

// Dialect returns the dialect name.
func (a *Adaptor) Dialect() string { return a.dialect }

// SQLType returns the type code storing values of the given field type.
//
// A temporal qualifier is only valid on time fields, and large object
// storage only on string and bytes fields. A time field without a
// qualifier is stored as a timestamp.
func (a *Adaptor) SQLType(t field.Type, temporal field.Temporal, lob bool) (dialect.TypeCode, bool) {
	if temporal != field.TemporalNone && t != field.TypeTime {
		return dialect.Null, false
	}
	if lob && t != field.TypeString && t != field.TypeBytes {
		return dialect.Null, false
	}
	switch t {
	case field.TypeBool:
		return dialect.Boolean, true
	case field.TypeInt8, field.TypeInt16, field.TypeUint8:
		return dialect.SmallInt, true
	case field.TypeInt, field.TypeInt32, field.TypeUint16, field.TypeUint32:
		return dialect.Integer, true
	case field.TypeInt64, field.TypeUint:
		return dialect.BigInt, true
	case field.TypeUint64:
		// Postgres has no unsigned 64-bit integer.
		if a.dialect == dialect.Postgres {
			return dialect.Null, false
		}
		return dialect.BigInt, true
	case field.TypeFloat32:
		return dialect.Real, true
	case field.TypeFloat64:
		return dialect.Double, true
	case field.TypeDecimal:
		return dialect.Decimal, true
	case field.TypeString, field.TypeEnum:
		if lob {
			return dialect.Clob, true
		}
		return dialect.Varchar, true
	case field.TypeBytes:
		if lob {
			return dialect.Blob, true
		}
		return dialect.Binary, true
	case field.TypeTime:
		switch temporal {
		case field.TemporalDate:
			return dialect.Date, true
		case field.TemporalTime:
			return dialect.Time, true
		case field.TemporalNone, field.TemporalTimestamp:
			return dialect.Timestamp, true
		}
	case field.TypeUUID:
		return dialect.UUID, true
	case field.TypeJSON:
		return dialect.JSON, true
	}
	return dialect.Null, false
}

// IdentityKind resolves a generation strategy for the dialect.
func (a *Adaptor) IdentityKind(s field.GenerationType) (dialect.IdentityKind, bool) {
	switch s {
	case field.GenerationAuto:
		if a.dialect == dialect.Postgres {
			return dialect.IdentitySequence, true
		}
		return dialect.IdentityAutoIncrement, true
	case field.GenerationIdentity:
		return dialect.IdentityAutoIncrement, true
	case field.GenerationSequence:
		if a.dialect == dialect.Postgres {
			return dialect.IdentitySequence, true
		}
	case field.GenerationTable:
		return dialect.IdentityTableGenerator, true
	}
	return dialect.IdentityNone, false
}

// ColumnType returns the atlas schema type of a column with the given code.
// A zero size selects the dialect default for sized types.
func (a *Adaptor) ColumnType(code dialect.TypeCode, size int64) schema.Type {
	switch a.dialect {
	case dialect.Postgres:
		return postgresType(code, size)
	case dialect.MySQL:
		return mysqlType(code, size)
	default:
		return sqliteType(code, size)
	}
}

// FormatType returns the DDL spelling of t in the dialect.
func (a *Adaptor) FormatType(t schema.Type) (string, error) {
	switch a.dialect {
	case dialect.Postgres:
		return postgres.FormatType(t)
	case dialect.MySQL:
		return mysql.FormatType(t)
	default:
		return sqlite.FormatType(t)
	}
}

// QuoteIdent quotes an identifier.
func (a *Adaptor) QuoteIdent(s string) string {
	switch a.dialect {
	case dialect.Postgres:
		return pq.QuoteIdentifier(s)
	case dialect.MySQL:
		return "`" + strings.ReplaceAll(s, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
}

// QuoteString quotes a string constant.
func (a *Adaptor) QuoteString(s string) string {
	switch a.dialect {
	case dialect.Postgres:
		return strings.TrimPrefix(pq.QuoteLiteral(s), " ")
	case dialect.MySQL:
		return "'" + escapeStringValue(s) + "'"
	default:
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
}

func sized(size, def int64) int {
	if size <= 0 {
		return int(def)
	}
	return int(size)
}

func postgresType(code dialect.TypeCode, size int64) schema.Type {
	switch code {
	case dialect.Boolean:
		return &schema.BoolType{T: "boolean"}
	case dialect.SmallInt:
		return &schema.IntegerType{T: "smallint"}
	case dialect.Integer:
		return &schema.IntegerType{T: "integer"}
	case dialect.BigInt:
		return &schema.IntegerType{T: "bigint"}
	case dialect.Real:
		return &schema.FloatType{T: "real", Precision: 24}
	case dialect.Double:
		return &schema.FloatType{T: "double precision", Precision: 53}
	case dialect.Decimal:
		return &schema.DecimalType{T: "numeric"}
	case dialect.Char:
		return &schema.StringType{T: "character", Size: sized(size, 1)}
	case dialect.Varchar:
		return &schema.StringType{T: "character varying", Size: sized(size, DefaultStringSize)}
	case dialect.Clob:
		return &schema.StringType{T: "text"}
	case dialect.Binary, dialect.Blob:
		return &schema.BinaryType{T: "bytea"}
	case dialect.Date:
		return &schema.TimeType{T: "date"}
	case dialect.Time:
		return &schema.TimeType{T: "time without time zone"}
	case dialect.Timestamp:
		return &schema.TimeType{T: "timestamp without time zone"}
	case dialect.UUID:
		return &schema.UUIDType{T: "uuid"}
	case dialect.JSON:
		return &schema.JSONType{T: "jsonb"}
	}
	return &schema.UnsupportedType{T: code.String()}
}

func mysqlType(code dialect.TypeCode, size int64) schema.Type {
	switch code {
	case dialect.Boolean:
		return &schema.BoolType{T: "boolean"}
	case dialect.SmallInt:
		return &schema.IntegerType{T: "smallint"}
	case dialect.Integer:
		return &schema.IntegerType{T: "int"}
	case dialect.BigInt:
		return &schema.IntegerType{T: "bigint"}
	case dialect.Real:
		return &schema.FloatType{T: "float"}
	case dialect.Double:
		return &schema.FloatType{T: "double"}
	case dialect.Decimal:
		return &schema.DecimalType{T: "decimal", Precision: 65, Scale: 30}
	case dialect.Char:
		return &schema.StringType{T: "char", Size: sized(size, 1)}
	case dialect.Varchar:
		return &schema.StringType{T: "varchar", Size: sized(size, DefaultStringSize)}
	case dialect.Clob:
		return &schema.StringType{T: "longtext"}
	case dialect.Binary:
		n := sized(size, DefaultBinarySize)
		return &schema.BinaryType{T: "varbinary", Size: &n}
	case dialect.Blob:
		return &schema.BinaryType{T: "longblob"}
	case dialect.Date:
		return &schema.TimeType{T: "date"}
	case dialect.Time:
		return &schema.TimeType{T: "time"}
	case dialect.Timestamp:
		return &schema.TimeType{T: "datetime"}
	case dialect.UUID:
		return &schema.StringType{T: "char", Size: 36}
	case dialect.JSON:
		return &schema.JSONType{T: "json"}
	}
	return &schema.UnsupportedType{T: code.String()}
}

func sqliteType(code dialect.TypeCode, _ int64) schema.Type {
	switch code {
	case dialect.Boolean:
		return &schema.BoolType{T: "bool"}
	case dialect.SmallInt, dialect.Integer, dialect.BigInt:
		return &schema.IntegerType{T: "integer"}
	case dialect.Real, dialect.Double:
		return &schema.FloatType{T: "real"}
	case dialect.Decimal:
		return &schema.DecimalType{T: "decimal"}
	case dialect.Char, dialect.Varchar, dialect.Clob:
		return &schema.StringType{T: "text"}
	case dialect.Binary, dialect.Blob:
		return &schema.BinaryType{T: "blob"}
	case dialect.Date:
		return &schema.TimeType{T: "date"}
	case dialect.Time:
		return &schema.TimeType{T: "time"}
	case dialect.Timestamp:
		return &schema.TimeType{T: "datetime"}
	case dialect.UUID:
		return &schema.UUIDType{T: "uuid"}
	case dialect.JSON:
		return &schema.JSONType{T: "json"}
	}
	return &schema.UnsupportedType{T: code.String()}
}

var _ dialect.Adaptor = (*Adaptor)(nil)
