package metamodel

import (
	"errors"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/schema"

	"github.com/syssam/orm"
	"github.com/syssam/orm/dialect"
	"github.com/syssam/orm/schema/field"
)

// Column is the physical storage of an attribute. It is derived once by
// the ColumnMapper and never mutated afterward.
type Column struct {
	Name       string               // physical column name.
	Code       dialect.TypeCode     // standard SQL type code.
	Type       schema.Type          // dialect column type.
	DDL        string               // DDL spelling of Type.
	Identity   dialect.IdentityKind // identifier generation, IdentityNone for plain columns.
	Optional   bool                 // nullable.
	Version    bool                 // optimistic-lock version column.
	PrimaryKey bool                 // identifier column.
	Size       int64                // declared size, 0 if none.
}

// ColumnMapper derives columns from field descriptors.
type ColumnMapper struct {
	adaptor dialect.Adaptor
}

// NewColumnMapper returns a mapper using the type rules of the adaptor.
func NewColumnMapper(a dialect.Adaptor) *ColumnMapper {
	return &ColumnMapper{adaptor: a}
}

// Map returns the column of fd. The column name is the explicit storage key
// if one was declared, otherwise the logical name. Identifier columns are
// never optional and never version columns.
func (m *ColumnMapper) Map(fd *field.Descriptor, identity dialect.IdentityKind) (*Column, error) {
	if strings.TrimSpace(fd.Name) == "" {
		return nil, orm.NewValidationError(fd.Name, errors.New("blank attribute name"))
	}
	name := fd.Name
	if key, ok := fd.Column(); ok {
		if strings.TrimSpace(key) == "" {
			return nil, orm.NewValidationError(fd.Name, errors.New("blank column name"))
		}
		name = key
	}
	code, ok := m.adaptor.SQLType(fd.Type, fd.Temporal, fd.Lob)
	if !ok {
		return nil, orm.NewUnsupportedAttributeTypeError(fd.Name, fd.Type.String(), fd.Temporal.String(), m.adaptor.Dialect())
	}
	typ := m.adaptor.ColumnType(code, fd.Size)
	ddl, err := m.adaptor.FormatType(typ)
	if err != nil {
		return nil, fmt.Errorf("metamodel: format type of %q: %w", fd.Name, err)
	}
	c := &Column{
		Name:       name,
		Code:       code,
		Type:       typ,
		DDL:        ddl,
		Identity:   identity,
		Optional:   fd.Optional,
		Version:    fd.Version,
		PrimaryKey: fd.ID,
		Size:       fd.Size,
	}
	if fd.ID {
		c.Optional = false
		c.Version = false
	}
	return c, nil
}

// atlas returns the atlas column of c.
func (c *Column) atlas() *schema.Column {
	return schema.NewColumn(c.Name).
		SetType(c.Type).
		SetNull(c.Optional)
}
