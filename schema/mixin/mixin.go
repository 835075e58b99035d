package mixin

import (
	"github.com/syssam/orm"
	"github.com/syssam/orm/schema/field"
)

// Schema is the default implementation for the orm.Mixin interface.
// It should be embedded in all custom mixin definitions.
//
// Example:
//
//	type MyMixin struct {
//	    mixin.Schema
//	}
//
//	func (MyMixin) Fields() []orm.Field {
//	    return []orm.Field{
//	        field.String("custom_field"),
//	    }
//	}
type Schema struct{}

// Fields returns the fields of the mixin.
// Override this method to add custom fields.
func (Schema) Fields() []orm.Field { return nil }

// schema mixin must implement `Mixin` interface.
var _ orm.Mixin = (*Schema)(nil)

// =============================================================================
// Built-in Mixins
// =============================================================================

// ID adds an int64 identifier named id, generated with the dialect's
// default strategy.
type ID struct {
	Schema
}

// Fields returns the identifier field.
func (ID) Fields() []orm.Field {
	return []orm.Field{
		field.Int64("id").
			ID().
			GeneratedValue(field.GenerationAuto).
			Comment("Generated identifier"),
	}
}

// SequenceID adds an int64 identifier named id, generated from the named
// sequence. The sequence is declared on the field.
type SequenceID struct {
	Schema
	Sequence string
}

// Fields returns the identifier field and its sequence declaration.
func (m SequenceID) Fields() []orm.Field {
	return []orm.Field{
		field.Int64("id").
			ID().
			GeneratedValue(field.GenerationSequence, m.Sequence).
			SequenceGenerator(field.SequenceGenerator{Name: m.Sequence}),
	}
}

// UUIDID adds a manually assigned UUID identifier named id.
type UUIDID struct {
	Schema
}

// Fields returns the identifier field.
func (UUIDID) Fields() []orm.Field {
	return []orm.Field{
		field.UUID("id").ID(),
	}
}

// Version adds the optimistic-lock version attribute.
type Version struct {
	Schema
}

// Fields returns the version field.
func (Version) Fields() []orm.Field {
	return []orm.Field{
		field.Int64("version").
			Version().
			Comment("Optimistic lock version"),
	}
}

// Time adds created_at and updated_at timestamp fields to a schema.
type Time struct {
	Schema
}

// Fields returns the time tracking fields.
func (Time) Fields() []orm.Field {
	return []orm.Field{
		field.Time("created_at").
			Temporal(field.TemporalTimestamp).
			Comment("Timestamp when the entity was created"),
		field.Time("updated_at").
			Temporal(field.TemporalTimestamp).
			Comment("Timestamp when the entity was last updated"),
	}
}

// SoftDelete adds a nullable deleted_at field.
type SoftDelete struct {
	Schema
}

// Fields returns the soft delete field.
func (SoftDelete) Fields() []orm.Field {
	return []orm.Field{
		field.Time("deleted_at").
			Optional().
			Comment("Timestamp when the entity was soft deleted (nil means not deleted)"),
	}
}
