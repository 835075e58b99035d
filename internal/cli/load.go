package cli

import (
	"io"

	"github.com/syssam/orm/dialect/sql"
	"github.com/syssam/orm/metamodel"
	"github.com/syssam/orm/schema/load"
)

// loadMetamodel reads the metadata document at path and builds its
// metamodel. Build events are logged to logw in verbose mode.
func loadMetamodel(opts *RootOptions, path string, logw io.Writer) (*metamodel.Metamodel, error) {
	spec, err := load.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "read metadata", err)
	}
	name := spec.Dialect
	if opts.Dialect != "" {
		name = opts.Dialect
	}
	a, err := sql.NewAdaptor(name)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "dialect", err)
	}
	descs, err := spec.Descriptors()
	if err != nil {
		return nil, WrapExitError(ExitFailure, "invalid metadata", err)
	}
	m, err := metamodel.Build(a, descs, metamodel.WithLogger(opts.logger(logw)))
	if err != nil {
		return nil, WrapExitError(ExitFailure, "build metamodel", err)
	}
	return m, nil
}
