package field

import (
	"errors"
	"strings"
)

// Generator defaults applied when a declaration leaves them unset.
const (
	DefaultInitialValue   = 1
	DefaultAllocationSize = 50
)

// A Descriptor for field configuration.
type Descriptor struct {
	Name              string             // logical attribute name.
	Type              Type               // declared value type.
	Temporal          Temporal           // temporal qualifier for time values.
	Lob               bool               // large object storage.
	ID                bool               // identifier attribute.
	Version           bool               // optimistic-lock version attribute.
	Optional          bool               // nullable column.
	StorageKey        *string            // explicit column name, nil if absent.
	Size              int64              // max size for strings and bytes.
	Generated         *GeneratedValue    // identity generation metadata.
	SequenceGenerator *SequenceGenerator // sequence generator declared on the field.
	TableGenerator    *TableGenerator    // table generator declared on the field.
	Comment           string             // field comment.
	err               error
}

// Err returns the error recorded while building the descriptor, if any.
func (d *Descriptor) Err() error { return d.err }

// Column returns the explicit column name and whether one was declared.
func (d *Descriptor) Column() (string, bool) {
	if d.StorageKey == nil {
		return "", false
	}
	return *d.StorageKey, true
}

// GeneratedValue holds the declared identity generation metadata.
type GeneratedValue struct {
	Strategy  GenerationType
	Generator string // name of a sequence or table generator, optional.
}

// SequenceGenerator declares a named database sequence.
type SequenceGenerator struct {
	Name           string
	SequenceName   string
	Schema         string
	InitialValue   int
	AllocationSize int
}

// GeneratorName implements the registry key contract.
func (g SequenceGenerator) GeneratorName() string { return g.Name }

// TableGenerator declares a named table-backed id generator.
type TableGenerator struct {
	Name            string
	Table           string
	PkColumnName    string
	ValueColumnName string
	PkColumnValue   string
	InitialValue    int
	AllocationSize  int
}

// GeneratorName implements the registry key contract.
func (g TableGenerator) GeneratorName() string { return g.Name }

// String returns a new Field with type string.
func String(name string) *Builder {
	return newBuilder(name, TypeString)
}

// Text returns a new string field with large object storage.
func Text(name string) *Builder {
	return newBuilder(name, TypeString).Lob()
}

// Bytes returns a new Field with type bytes/buffer.
func Bytes(name string) *Builder {
	return newBuilder(name, TypeBytes)
}

// Bool returns a new Field with type bool.
func Bool(name string) *Builder {
	return newBuilder(name, TypeBool)
}

// Time returns a new Field with type timestamp.
func Time(name string) *Builder {
	return newBuilder(name, TypeTime)
}

// Int returns a new Field with type int.
func Int(name string) *Builder {
	return newBuilder(name, TypeInt)
}

// Int32 returns a new Field with type int32.
func Int32(name string) *Builder {
	return newBuilder(name, TypeInt32)
}

// Int64 returns a new Field with type int64.
func Int64(name string) *Builder {
	return newBuilder(name, TypeInt64)
}

// Float64 returns a new Field with type float64.
func Float64(name string) *Builder {
	return newBuilder(name, TypeFloat64)
}

// Decimal returns a new Field with type decimal.
func Decimal(name string) *Builder {
	return newBuilder(name, TypeDecimal)
}

// UUID returns a new Field with type UUID.
func UUID(name string) *Builder {
	return newBuilder(name, TypeUUID)
}

// JSON returns a new Field with type json.
func JSON(name string) *Builder {
	return newBuilder(name, TypeJSON)
}

// Of returns a new Field with the given type. It is used by metadata
// loaders that resolve the type at runtime.
func Of(name string, t Type) *Builder {
	return newBuilder(name, t)
}

// Builder is the builder for all field types.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: t}}
}

// ID marks the field as an identifier attribute.
func (b *Builder) ID() *Builder {
	b.desc.ID = true
	return b
}

// Version marks the field as the optimistic-lock version attribute.
func (b *Builder) Version() *Builder {
	b.desc.Version = true
	return b
}

// Optional indicates that this field is nullable.
// It is ignored on identifier fields.
func (b *Builder) Optional() *Builder {
	b.desc.Optional = true
	return b
}

// StorageKey sets the storage key (column name) of the field.
// An empty key is recorded and rejected when the column is mapped.
func (b *Builder) StorageKey(key string) *Builder {
	b.desc.StorageKey = &key
	return b
}

// Temporal sets the temporal qualifier of a time field.
func (b *Builder) Temporal(t Temporal) *Builder {
	b.desc.Temporal = t
	return b
}

// Size sets the maximum size of a string or bytes column.
func (b *Builder) Size(n int64) *Builder {
	if n < 0 {
		b.desc.err = errors.Join(b.desc.err, errors.New("field: size must be non-negative"))
	}
	b.desc.Size = n
	return b
}

// Lob stores the field as a large object (CLOB for strings, BLOB for bytes).
func (b *Builder) Lob() *Builder {
	b.desc.Lob = true
	return b
}

// Comment sets the comment of the field.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// GeneratedValue declares how identifier values are generated.
// The generator name is optional.
func (b *Builder) GeneratedValue(strategy GenerationType, generator ...string) *Builder {
	gv := &GeneratedValue{Strategy: strategy}
	if len(generator) > 0 {
		gv.Generator = generator[0]
	}
	b.desc.Generated = gv
	return b
}

// SequenceGenerator declares a sequence generator on the field.
func (b *Builder) SequenceGenerator(g SequenceGenerator) *Builder {
	g = g.withDefaults()
	if strings.TrimSpace(g.Name) == "" {
		b.desc.err = errors.Join(b.desc.err, errors.New("field: sequence generator name is required"))
	}
	b.desc.SequenceGenerator = &g
	return b
}

// TableGenerator declares a table generator on the field.
func (b *Builder) TableGenerator(g TableGenerator) *Builder {
	g = g.withDefaults()
	if strings.TrimSpace(g.Name) == "" {
		b.desc.err = errors.Join(b.desc.err, errors.New("field: table generator name is required"))
	}
	b.desc.TableGenerator = &g
	return b
}

// Descriptor implements the schema.Field interface by returning its descriptor.
func (b *Builder) Descriptor() *Descriptor {
	if strings.TrimSpace(b.desc.Name) == "" {
		b.desc.err = errors.Join(b.desc.err, errors.New("field: name is required"))
	}
	return b.desc
}

func (g SequenceGenerator) withDefaults() SequenceGenerator {
	if g.SequenceName == "" {
		g.SequenceName = g.Name
	}
	if g.InitialValue == 0 {
		g.InitialValue = DefaultInitialValue
	}
	if g.AllocationSize == 0 {
		g.AllocationSize = DefaultAllocationSize
	}
	return g
}

func (g TableGenerator) withDefaults() TableGenerator {
	if g.Table == "" {
		g.Table = "id_generators"
	}
	if g.PkColumnName == "" {
		g.PkColumnName = "gen_name"
	}
	if g.ValueColumnName == "" {
		g.ValueColumnName = "gen_value"
	}
	if g.PkColumnValue == "" {
		g.PkColumnValue = g.Name
	}
	if g.InitialValue == 0 {
		g.InitialValue = DefaultInitialValue
	}
	if g.AllocationSize == 0 {
		g.AllocationSize = DefaultAllocationSize
	}
	return g
}
