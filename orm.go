package orm

import "github.com/syssam/orm/schema/field"

type (
	// Interface is the interface implemented by entity schemas.
	//
	//	type User struct {
	//		orm.Schema
	//	}
	//
	//	func (User) Fields() []orm.Field {
	//		return []orm.Field{
	//			field.Int64("id").ID().GeneratedValue(field.GenerationAuto),
	//			field.String("nickname").Optional(),
	//		}
	//	}
	Interface interface {
		// Table returns the table name of the entity. An empty name
		// selects the default derived from the entity name.
		Table() string
		// Mixin returns reusable field sets. Mixin fields come first.
		Mixin() []Mixin
		// Fields returns the attributes of the entity.
		Fields() []Field
	}

	// A Field interface returns a field descriptor for schema fields.
	// The usage of the interface is as follows:
	//
	//	func (T) Fields() []orm.Field {
	//		return []orm.Field{
	//			field.Int("age"),
	//		}
	//	}
	Field interface {
		Descriptor() *field.Descriptor
	}

	// The Mixin type describes a set of fields that can be embedded
	// in other schemas.
	Mixin interface {
		Fields() []Field
	}

	// Schema is the default implementation for the schema Interface.
	// It can be embedded in end-user schemas as follows:
	//
	//	type T struct {
	//		orm.Schema
	//	}
	Schema struct {
		Interface
	}
)

// Table of the schema.
func (Schema) Table() string { return "" }

// Mixin of the schema.
func (Schema) Mixin() []Mixin { return nil }

// Fields of the schema.
func (Schema) Fields() []Field { return nil }

var _ Interface = (*Schema)(nil)
