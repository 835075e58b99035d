package sql

import (
	"fmt"

	"github.com/syssam/orm"
)

// Row is a materialized result row. Values are addressed by the result
// column alias, as assigned by the query compiler.
type Row struct {
	columns []string
	values  []any
	index   map[string]int
}

// NewRow returns a row holding the given column values.
func NewRow(columns []string, values []any) *Row {
	r := &Row{columns: columns, values: values, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, ok := r.index[c]; !ok {
			r.index[c] = i
		}
	}
	return r
}

// Columns returns the column aliases of the row.
func (r *Row) Columns() []string { return r.columns }

// Value returns the raw value stored under alias. NULL is returned as nil.
func (r *Row) Value(alias string) (any, error) {
	i, ok := r.index[alias]
	if !ok {
		return nil, orm.NewMissingAliasError(fmt.Sprintf("result column %q", alias))
	}
	return r.values[i], nil
}

// ScanRow scans the current row of rs. The caller must have called
// rs.Next before.
func ScanRow(rs ColumnScanner) (*Row, error) {
	columns, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: columns: %w", err)
	}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rs.Scan(dest...); err != nil {
		return nil, fmt.Errorf("dialect/sql: scan: %w", translateError(err))
	}
	// Drivers may reuse byte buffers between rows.
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = append([]byte(nil), b...)
		}
	}
	return NewRow(columns, values), nil
}

// ScanRows scans all remaining rows of rs and closes it.
func ScanRows(rs ColumnScanner) (rows []*Row, err error) {
	defer func() {
		if cerr := rs.Close(); err == nil {
			err = cerr
		}
	}()
	for rs.Next() {
		r, err := ScanRow(rs)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("dialect/sql: rows: %w", translateError(err))
	}
	return rows, nil
}
