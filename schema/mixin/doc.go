// Package mixin provides reusable field sets for entity schemas.
//
// A mixin is a set of fields that can be embedded in multiple schema
// definitions. Mixin fields come before the schema's own fields.
//
// Creating Custom Mixins:
//
//	type AuditMixin struct {
//	    mixin.Schema
//	}
//
//	func (AuditMixin) Fields() []orm.Field {
//	    return []orm.Field{
//	        field.String("created_by").Optional(),
//	        field.String("updated_by").Optional(),
//	    }
//	}
//
// Using Mixins:
//
//	func (User) Mixin() []orm.Mixin {
//	    return []orm.Mixin{
//	        mixin.ID{},
//	        mixin.Version{},
//	        AuditMixin{},
//	    }
//	}
package mixin
