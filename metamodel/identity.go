package metamodel

import (
	"log/slog"

	"github.com/syssam/orm"
	"github.com/syssam/orm/dialect"
	"github.com/syssam/orm/schema/field"
)

// IdentityResolver decides how identifier values are generated and
// registers the generators declared on attributes.
type IdentityResolver struct {
	adaptor   dialect.Adaptor
	sequences *Registry[field.SequenceGenerator]
	tables    *Registry[field.TableGenerator]
	logger    *slog.Logger
}

// NewIdentityResolver returns a resolver registering generators into the
// given registries.
func NewIdentityResolver(a dialect.Adaptor, sequences *Registry[field.SequenceGenerator], tables *Registry[field.TableGenerator], logger *slog.Logger) *IdentityResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentityResolver{adaptor: a, sequences: sequences, tables: tables, logger: logger}
}

// Resolve registers the generators declared on fd and returns the identity
// kind of the attribute. Attributes without generation metadata are
// assigned manually.
func (r *IdentityResolver) Resolve(fd *field.Descriptor) (dialect.IdentityKind, error) {
	if err := r.Declare(fd); err != nil {
		return dialect.IdentityNone, err
	}
	if fd.Generated == nil {
		return dialect.IdentityManual, nil
	}
	kind, ok := r.adaptor.IdentityKind(fd.Generated.Strategy)
	if !ok || !kind.Generated() {
		return dialect.IdentityNone, orm.NewUnsupportedIdentityStrategyError(fd.Name, fd.Generated.Strategy.String(), r.adaptor.Dialect())
	}
	return kind, nil
}

// Declare registers the sequence and table generators declared on fd.
// Each declaration is registered once.
func (r *IdentityResolver) Declare(fd *field.Descriptor) error {
	if g := fd.SequenceGenerator; g != nil {
		added, err := r.sequences.Register(*g)
		if err != nil {
			return err
		}
		if added {
			r.logger.Debug("generator registered", "kind", "sequence", "name", g.Name, "attribute", fd.Name)
		}
	}
	if g := fd.TableGenerator; g != nil {
		added, err := r.tables.Register(*g)
		if err != nil {
			return err
		}
		if added {
			r.logger.Debug("generator registered", "kind", "table", "name", g.Name, "attribute", fd.Name)
		}
	}
	return nil
}
