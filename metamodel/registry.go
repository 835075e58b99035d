package metamodel

import (
	"maps"
	"slices"

	"github.com/syssam/orm"
)

// Generator is a named generator declaration. Two declarations with the
// same name are identical if they compare equal.
type Generator interface {
	comparable
	GeneratorName() string
}

// Registry is an append-only set of generator declarations keyed by name.
// It is written while the metamodel is built and read-only afterward.
type Registry[G Generator] struct {
	items map[string]G
}

// NewRegistry returns an empty registry.
func NewRegistry[G Generator]() *Registry[G] {
	return &Registry[G]{items: make(map[string]G)}
}

// Register adds g under its name. Registering an identical declaration
// again is a no-op and reports false. A different declaration under an
// existing name fails with orm.ConflictingGeneratorError.
func (r *Registry[G]) Register(g G) (bool, error) {
	name := g.GeneratorName()
	if prev, ok := r.items[name]; ok {
		if prev != g {
			return false, orm.NewConflictingGeneratorError(name, prev, g)
		}
		return false, nil
	}
	r.items[name] = g
	return true, nil
}

// Lookup returns the declaration registered under name.
func (r *Registry[G]) Lookup(name string) (G, bool) {
	g, ok := r.items[name]
	return g, ok
}

// Len returns the number of registered declarations.
func (r *Registry[G]) Len() int { return len(r.items) }

// Names returns the registered names in sorted order.
func (r *Registry[G]) Names() []string {
	return slices.Sorted(maps.Keys(r.items))
}
