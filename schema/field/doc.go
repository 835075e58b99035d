// Package field provides fluent builders for declaring entity attributes.
//
// A builder produces a Descriptor, the declarative metadata that the
// metamodel maps to a physical column:
//
//	field.Int64("id").ID().GeneratedValue(field.GenerationSequence, "user_seq").
//	    SequenceGenerator(field.SequenceGenerator{Name: "user_seq"})
//	field.String("nickname").Optional().Size(64)
//	field.Text("bio")                                 // CLOB
//	field.Time("born").Temporal(field.TemporalDate)   // DATE
//	field.Int("lock").Version()
//
// # Field Types
//
//	field.String("name")      // VARCHAR
//	field.Text("bio")         // CLOB
//	field.Int("count")        // INTEGER
//	field.Int64("big_number") // BIGINT
//	field.Float64("price")    // DOUBLE
//	field.Decimal("amount")   // DECIMAL
//	field.Bool("active")      // BOOLEAN
//	field.Time("created_at")  // TIMESTAMP
//	field.UUID("token")       // UUID
//	field.Bytes("data")       // BINARY
//	field.JSON("metadata")    // JSON
//
// # Column Names
//
// The column name defaults to the logical attribute name. StorageKey
// overrides it; an explicitly blank override is rejected by the column
// mapper instead of falling back to the default.
//
// # Identity Generation
//
// Identifier fields without GeneratedValue are assigned manually by the
// application. GenerationAuto, GenerationIdentity, GenerationSequence and
// GenerationTable are resolved against the dialect adaptor at build time.
// Generators declared with SequenceGenerator or TableGenerator are
// registered once in the metamodel; unset parameters take the defaults
// DefaultInitialValue and DefaultAllocationSize.
package field
