// Package load reads entity metadata from YAML or JSON documents.
//
// A document declares the dialect and the entities:
//
//	dialect: postgres
//	entities:
//	  - name: User
//	    table: users
//	    fields:
//	      - name: id
//	        type: int64
//	        id: true
//	        generated: {strategy: sequence, generator: user_seq}
//	        sequence_generator: {name: user_seq}
//	      - name: nickname
//	        type: string
//	        optional: true
//	        column: nick
package load

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/orm"
	"github.com/syssam/orm/schema"
	"github.com/syssam/orm/schema/field"
)

// Spec is a metadata document.
type Spec struct {
	Dialect  string    `yaml:"dialect" json:"dialect,omitempty"`
	Entities []*Entity `yaml:"entities" json:"entities,omitempty"`
}

// Entity represents an entity declared in a metadata document.
type Entity struct {
	Name   string   `yaml:"name" json:"name,omitempty"`
	Table  string   `yaml:"table,omitempty" json:"table,omitempty"`
	Fields []*Field `yaml:"fields" json:"fields,omitempty"`
}

// Field represents an attribute declared in a metadata document.
type Field struct {
	Name              string             `yaml:"name" json:"name,omitempty"`
	Type              string             `yaml:"type" json:"type,omitempty"`
	Temporal          string             `yaml:"temporal,omitempty" json:"temporal,omitempty"`
	Lob               bool               `yaml:"lob,omitempty" json:"lob,omitempty"`
	ID                bool               `yaml:"id,omitempty" json:"id,omitempty"`
	Version           bool               `yaml:"version,omitempty" json:"version,omitempty"`
	Optional          bool               `yaml:"optional,omitempty" json:"optional,omitempty"`
	Column            *string            `yaml:"column,omitempty" json:"column,omitempty"`
	Size              int64              `yaml:"size,omitempty" json:"size,omitempty"`
	Comment           string             `yaml:"comment,omitempty" json:"comment,omitempty"`
	Generated         *Generated         `yaml:"generated,omitempty" json:"generated,omitempty"`
	SequenceGenerator *SequenceGenerator `yaml:"sequence_generator,omitempty" json:"sequence_generator,omitempty"`
	TableGenerator    *TableGenerator    `yaml:"table_generator,omitempty" json:"table_generator,omitempty"`
}

// Generated is the identity generation metadata of a field.
type Generated struct {
	Strategy  string `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Generator string `yaml:"generator,omitempty" json:"generator,omitempty"`
}

// SequenceGenerator is a sequence declaration.
type SequenceGenerator struct {
	Name           string `yaml:"name" json:"name,omitempty"`
	SequenceName   string `yaml:"sequence_name,omitempty" json:"sequence_name,omitempty"`
	Schema         string `yaml:"schema,omitempty" json:"schema,omitempty"`
	InitialValue   int    `yaml:"initial_value,omitempty" json:"initial_value,omitempty"`
	AllocationSize int    `yaml:"allocation_size,omitempty" json:"allocation_size,omitempty"`
}

// TableGenerator is a table generator declaration.
type TableGenerator struct {
	Name            string `yaml:"name" json:"name,omitempty"`
	Table           string `yaml:"table,omitempty" json:"table,omitempty"`
	PkColumnName    string `yaml:"pk_column_name,omitempty" json:"pk_column_name,omitempty"`
	ValueColumnName string `yaml:"value_column_name,omitempty" json:"value_column_name,omitempty"`
	PkColumnValue   string `yaml:"pk_column_value,omitempty" json:"pk_column_value,omitempty"`
	InitialValue    int    `yaml:"initial_value,omitempty" json:"initial_value,omitempty"`
	AllocationSize  int    `yaml:"allocation_size,omitempty" json:"allocation_size,omitempty"`
}

// ReadFile reads and parses the metadata document at path.
func ReadFile(path string) (*Spec, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read %s: %w", path, err)
	}
	return Parse(buf)
}

// Parse parses a YAML or JSON metadata document. Unknown keys are rejected.
func Parse(buf []byte) (*Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	spec := &Spec{}
	if err := dec.Decode(spec); err != nil {
		return nil, fmt.Errorf("load: decode metadata: %w", err)
	}
	return spec, nil
}

// Descriptors converts the document entities into schema descriptors.
// All conversion errors are collected and returned together.
func (s *Spec) Descriptors() ([]*schema.Descriptor, error) {
	var (
		errs  []error
		descs = make([]*schema.Descriptor, 0, len(s.Entities))
	)
	for _, e := range s.Entities {
		d, err := e.Descriptor()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		descs = append(descs, d)
	}
	if err := orm.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	return descs, nil
}

// Descriptor converts the entity into a schema descriptor.
func (e *Entity) Descriptor() (*schema.Descriptor, error) {
	b := schema.Entity(e.Name).Table(e.Table)
	var errs []error
	for _, f := range e.Fields {
		fb, err := f.builder()
		if err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", f.Name, err))
			continue
		}
		b.Fields(fb)
	}
	d, err := b.Descriptor()
	if len(errs) == 0 {
		return d, err
	}
	if err != nil {
		errs = append(errs, errors.Unwrap(err))
	}
	return nil, orm.NewValidationError(e.Name, errors.Join(errs...))
}

func (f *Field) builder() (*field.Builder, error) {
	t, err := field.ParseType(f.Type)
	if err != nil {
		return nil, err
	}
	tm, err := field.ParseTemporal(f.Temporal)
	if err != nil {
		return nil, err
	}
	b := field.Of(f.Name, t).Temporal(tm).Size(f.Size).Comment(f.Comment)
	if f.Lob {
		b.Lob()
	}
	if f.ID {
		b.ID()
	}
	if f.Version {
		b.Version()
	}
	if f.Optional {
		b.Optional()
	}
	if f.Column != nil {
		b.StorageKey(*f.Column)
	}
	if g := f.Generated; g != nil {
		s, err := field.ParseGenerationType(g.Strategy)
		if err != nil {
			return nil, err
		}
		b.GeneratedValue(s, g.Generator)
	}
	if g := f.SequenceGenerator; g != nil {
		b.SequenceGenerator(field.SequenceGenerator{
			Name:           g.Name,
			SequenceName:   g.SequenceName,
			Schema:         g.Schema,
			InitialValue:   g.InitialValue,
			AllocationSize: g.AllocationSize,
		})
	}
	if g := f.TableGenerator; g != nil {
		b.TableGenerator(field.TableGenerator{
			Name:            g.Name,
			Table:           g.Table,
			PkColumnName:    g.PkColumnName,
			ValueColumnName: g.ValueColumnName,
			PkColumnValue:   g.PkColumnValue,
			InitialValue:    g.InitialValue,
			AllocationSize:  g.AllocationSize,
		})
	}
	return b, nil
}
