// Package schema provides the building blocks for declaring entity metadata.
//
// This package turns entity schemas into Descriptors, the input of the
// metamodel builder:
//
//   - [field]: Field builders for entity attributes
//   - [mixin]: Reusable field sets
//   - [load]: YAML and JSON metadata documents
//
// # Quick Start
//
// Define an entity schema by embedding orm.Schema:
//
//	type User struct{ orm.Schema }
//
//	func (User) Mixin() []orm.Mixin {
//	    return []orm.Mixin{
//	        mixin.ID{},      // int64 generated identifier
//	        mixin.Version{}, // optimistic-lock version
//	    }
//	}
//
//	func (User) Fields() []orm.Field {
//	    return []orm.Field{
//	        field.String("nickname").Optional().Size(64),
//	        field.Time("born").Temporal(field.TemporalDate),
//	    }
//	}
//
//	desc, err := schema.Describe("User", User{})
//
// Or build the descriptor directly:
//
//	desc, err := schema.Entity("User").
//	    Table("users").
//	    Fields(field.Int64("id").ID(), field.String("nickname")).
//	    Descriptor()
package schema
