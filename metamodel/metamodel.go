package metamodel

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ariga.io/atlas/sql/schema"
	"github.com/go-openapi/inflect"

	"github.com/syssam/orm"
	"github.com/syssam/orm/dialect"
	entschema "github.com/syssam/orm/schema"
	"github.com/syssam/orm/schema/field"
)

// Metamodel holds the mapped entity types and the generator registries.
// It is immutable once Build returns and safe for concurrent use.
type Metamodel struct {
	adaptor   dialect.Adaptor
	entities  []*EntityType
	byName    map[string]*EntityType
	sequences *Registry[field.SequenceGenerator]
	tables    *Registry[field.TableGenerator]
}

// Option configures Build.
type Option func(*config)

type config struct {
	logger *slog.Logger
	namer  func(string) string
}

// WithLogger sets the logger for build events. Events are logged at
// debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithTableNamer sets the function deriving table names for entities that
// declare none. The default is the snake-cased plural of the entity name.
func WithTableNamer(f func(entity string) string) Option {
	return func(c *config) {
		c.namer = f
	}
}

// TableName returns the default table name of an entity.
func TableName(entity string) string {
	return inflect.Underscore(inflect.Pluralize(entity))
}

// Build maps the given entity descriptors with the adaptor. All
// declaration errors are collected and returned together.
func Build(a dialect.Adaptor, descs []*entschema.Descriptor, opts ...Option) (*Metamodel, error) {
	cfg := &config{logger: slog.Default(), namer: TableName}
	for _, opt := range opts {
		opt(cfg)
	}
	m := &Metamodel{
		adaptor:   a,
		byName:    make(map[string]*EntityType, len(descs)),
		sequences: NewRegistry[field.SequenceGenerator](),
		tables:    NewRegistry[field.TableGenerator](),
	}
	var (
		errs     []error
		mapper   = NewColumnMapper(a)
		resolver = NewIdentityResolver(a, m.sequences, m.tables, cfg.logger)
	)
	for _, d := range descs {
		if _, ok := m.byName[d.Name]; ok {
			errs = append(errs, orm.NewValidationError(d.Name, errors.New("duplicate entity")))
			continue
		}
		et, eerrs := m.entity(d, cfg, mapper, resolver)
		errs = append(errs, eerrs...)
		if et == nil {
			continue
		}
		m.entities = append(m.entities, et)
		m.byName[et.name] = et
		cfg.logger.Debug("entity registered", "entity", et.name, "table", et.table, "attributes", len(et.attrs))
	}
	errs = append(errs, m.checkGenerators()...)
	if err := orm.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metamodel) entity(d *entschema.Descriptor, cfg *config, mapper *ColumnMapper, resolver *IdentityResolver) (*EntityType, []error) {
	et := &EntityType{
		name:   d.Name,
		table:  d.Table,
		byName: make(map[string]*Attribute, len(d.Fields)),
	}
	columns := make(map[string]string, len(d.Fields))
	if et.table == "" {
		et.table = cfg.namer(d.Name)
	}
	var (
		errs     []error
		ids      int
		versions int
	)
	for _, fd := range d.Fields {
		qualified := d.Name + "." + fd.Name
		if _, ok := et.byName[fd.Name]; ok {
			errs = append(errs, orm.NewValidationError(qualified, errors.New("duplicate attribute")))
			continue
		}
		if fd.Generated != nil && !fd.ID {
			errs = append(errs, orm.NewValidationError(qualified, errors.New("generated value on a non-identifier attribute")))
			continue
		}
		var (
			kind = dialect.IdentityNone
			err  error
		)
		if fd.ID {
			kind, err = resolver.Resolve(fd)
		} else {
			err = resolver.Declare(fd)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c, err := mapper.Map(fd, kind)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, ok := columns[strings.ToLower(c.Name)]; ok {
			errs = append(errs, orm.NewValidationError(qualified, fmt.Errorf("column %q already mapped by attribute %q", c.Name, prev)))
			continue
		}
		columns[strings.ToLower(c.Name)] = fd.Name
		a := newAttribute(et, fd, c)
		et.attrs = append(et.attrs, a)
		et.byName[a.name] = a
		if a.id {
			ids++
		}
		if a.version {
			versions++
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if ids == 0 {
		return nil, []error{orm.NewValidationError(d.Name, errors.New("no identifier attribute"))}
	}
	if versions > 1 {
		return nil, []error{orm.NewValidationError(d.Name, fmt.Errorf("%d version attributes, at most one allowed", versions))}
	}
	et.buildTable()
	return et, nil
}

// checkGenerators verifies that generator names referenced by identifiers
// are declared with the kind matching their strategy.
func (m *Metamodel) checkGenerators() []error {
	var errs []error
	for _, et := range m.entities {
		for _, a := range et.IDs() {
			if a.generator == "" {
				continue
			}
			var ok bool
			switch a.identity {
			case dialect.IdentitySequence:
				_, ok = m.sequences.Lookup(a.generator)
			case dialect.IdentityTableGenerator:
				_, ok = m.tables.Lookup(a.generator)
			default:
				// Auto-increment columns ignore named generators.
				ok = true
			}
			if !ok {
				errs = append(errs, orm.NewValidationError(et.name+"."+a.name, fmt.Errorf("undeclared %s generator %q", a.identity, a.generator)))
			}
		}
	}
	return errs
}

// Adaptor returns the adaptor the metamodel was built with.
func (m *Metamodel) Adaptor() dialect.Adaptor { return m.adaptor }

// Entity returns the named entity type, or nil.
func (m *Metamodel) Entity(name string) *EntityType { return m.byName[name] }

// Entities returns the entity types in declaration order.
func (m *Metamodel) Entities() []*EntityType { return m.entities }

// Sequences returns the sequence generator registry.
func (m *Metamodel) Sequences() *Registry[field.SequenceGenerator] { return m.sequences }

// TableGenerators returns the table generator registry.
func (m *Metamodel) TableGenerators() *Registry[field.TableGenerator] { return m.tables }

// Tables returns the atlas tables of all entity types.
func (m *Metamodel) Tables() []*schema.Table {
	tables := make([]*schema.Table, len(m.entities))
	for i, et := range m.entities {
		tables[i] = et.atlas
	}
	return tables
}
