package metamodel

import (
	"ariga.io/atlas/sql/schema"

	"github.com/syssam/orm/dialect"
	"github.com/syssam/orm/schema/field"
)

// Attribute is a persistent attribute of an entity type.
type Attribute struct {
	name      string
	typ       field.Type
	temporal  field.Temporal
	id        bool
	version   bool
	optional  bool
	column    *Column
	identity  dialect.IdentityKind
	generator string
	declaring *EntityType
}

func newAttribute(et *EntityType, fd *field.Descriptor, c *Column) *Attribute {
	a := &Attribute{
		name:      fd.Name,
		typ:       fd.Type,
		temporal:  fd.Temporal,
		id:        fd.ID,
		version:   c.Version,
		optional:  c.Optional,
		column:    c,
		identity:  c.Identity,
		declaring: et,
	}
	if fd.Generated != nil {
		a.generator = fd.Generated.Generator
	}
	return a
}

// Name returns the logical attribute name.
func (a *Attribute) Name() string { return a.name }

// Type returns the declared value type.
func (a *Attribute) Type() field.Type { return a.typ }

// Temporal returns the temporal qualifier.
func (a *Attribute) Temporal() field.Temporal { return a.temporal }

// IsID reports whether the attribute is an identifier.
func (a *Attribute) IsID() bool { return a.id }

// IsVersion reports whether the attribute is the version attribute.
// Identifiers never are.
func (a *Attribute) IsVersion() bool { return a.version }

// IsOptional reports whether the attribute is nullable. Identifiers never are.
func (a *Attribute) IsOptional() bool { return a.optional }

// Column returns the physical column.
func (a *Attribute) Column() *Column { return a.column }

// Identity returns the identity kind, IdentityNone for non-identifiers.
func (a *Attribute) Identity() dialect.IdentityKind { return a.identity }

// Generator returns the name of the generator referenced by the attribute.
func (a *Attribute) Generator() string { return a.generator }

// DeclaringType returns the entity type owning the attribute.
func (a *Attribute) DeclaringType() *EntityType { return a.declaring }

// EntityType is a mapped entity.
type EntityType struct {
	name   string
	table  string
	attrs  []*Attribute
	byName map[string]*Attribute
	atlas  *schema.Table
}

// Name returns the entity name.
func (e *EntityType) Name() string { return e.name }

// Table returns the table name.
func (e *EntityType) Table() string { return e.table }

// Attribute returns the named attribute, or nil.
func (e *EntityType) Attribute(name string) *Attribute { return e.byName[name] }

// Attributes returns the attributes in declaration order.
func (e *EntityType) Attributes() []*Attribute { return e.attrs }

// IDs returns the identifier attributes in declaration order. There is
// more than one for composite identifiers.
func (e *EntityType) IDs() []*Attribute {
	var ids []*Attribute
	for _, a := range e.attrs {
		if a.id {
			ids = append(ids, a)
		}
	}
	return ids
}

// Version returns the version attribute, or nil.
func (e *EntityType) Version() *Attribute {
	for _, a := range e.attrs {
		if a.version {
			return a
		}
	}
	return nil
}

// SchemaTable returns the atlas table of the entity.
func (e *EntityType) SchemaTable() *schema.Table { return e.atlas }

func (e *EntityType) buildTable() {
	t := schema.NewTable(e.table)
	var pk []*schema.Column
	for _, a := range e.attrs {
		c := a.column.atlas()
		t.AddColumns(c)
		if a.id {
			pk = append(pk, c)
		}
	}
	if len(pk) > 0 {
		t.SetPrimaryKey(schema.NewPrimaryKey(pk...))
	}
	e.atlas = t
}
