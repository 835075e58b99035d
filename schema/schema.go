package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/orm"
	"github.com/syssam/orm/schema/field"
)

// Descriptor is the declarative metadata of one entity type.
type Descriptor struct {
	Name   string              // entity name.
	Table  string              // table name, empty selects the default.
	Fields []*field.Descriptor // attributes in declaration order.
}

// Field returns the attribute with the given name, or nil.
func (d *Descriptor) Field(name string) *field.Descriptor {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Describe builds the descriptor of a schema. Mixin fields come before
// the schema's own fields. Errors recorded by field builders are joined
// and returned as a validation error of the entity.
func Describe(name string, s orm.Interface) (*Descriptor, error) {
	b := Entity(name).Table(s.Table()).Mixin(s.Mixin()...).Fields(s.Fields()...)
	return b.Descriptor()
}

// Builder builds entity descriptors.
type Builder struct {
	desc *Descriptor
	errs []error
}

// Entity returns a new builder for the named entity.
func Entity(name string) *Builder {
	b := &Builder{desc: &Descriptor{Name: name}}
	if strings.TrimSpace(name) == "" {
		b.errs = append(b.errs, errors.New("schema: entity name is required"))
	}
	return b
}

// Table sets the table name.
func (b *Builder) Table(name string) *Builder {
	b.desc.Table = name
	return b
}

// Mixin appends the fields of the given mixins.
func (b *Builder) Mixin(mixins ...orm.Mixin) *Builder {
	for _, m := range mixins {
		b.Fields(m.Fields()...)
	}
	return b
}

// Fields appends fields.
func (b *Builder) Fields(fields ...orm.Field) *Builder {
	for _, f := range fields {
		fd := f.Descriptor()
		if err := fd.Err(); err != nil {
			b.errs = append(b.errs, fmt.Errorf("field %q: %w", fd.Name, err))
		}
		b.desc.Fields = append(b.desc.Fields, fd)
	}
	return b
}

// Descriptor returns the entity descriptor and the errors recorded while
// building it.
func (b *Builder) Descriptor() (*Descriptor, error) {
	if len(b.errs) > 0 {
		return b.desc, orm.NewValidationError(b.desc.Name, errors.Join(b.errs...))
	}
	return b.desc, nil
}
