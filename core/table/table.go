// Package table implements the row-metadata table attached to each assay: an
// ordered mapping from column name to a column of scalar values, all columns
// sharing one row count. A nil entry in a column denotes a missing value.
package table

import (
	"fmt"
	"sort"
)

// Column is a single metadata column. Entries are scalar values; a nil entry
// marks the value as missing for that row.
type Column []any

// Table is an ordered collection of equal-length columns keyed by name.
// Tables are treated as read-only once constructed; every transforming
// operation returns a new Table.
type Table struct {
	names []string
	cols  map[string]Column
	nrows int
}

// New creates a table from an ordered list of column names and their columns.
// Every name must have a column and all columns must share one length.
func New(names []string, cols map[string]Column) (*Table, error) {
	nrows := 0
	for i, name := range names {
		col, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("table: column %q named but not provided", name)
		}
		if i == 0 {
			nrows = len(col)
			continue
		}
		if len(col) != nrows {
			return nil, fmt.Errorf("table: column %q has %d rows, expected %d", name, len(col), nrows)
		}
	}
	if len(names) != len(cols) {
		return nil, fmt.Errorf("table: %d names for %d columns", len(names), len(cols))
	}
	copied := make(map[string]Column, len(cols))
	for name, col := range cols {
		copied[name] = append(Column(nil), col...)
	}
	return &Table{
		names: append([]string(nil), names...),
		cols:  copied,
		nrows: nrows,
	}, nil
}

// FromRows builds a table from row-oriented maps, one map per row. Column
// order is the sorted union of all keys; rows lacking a key get a missing
// entry for that column.
func FromRows(rows []map[string]any) *Table {
	nameSet := make(map[string]struct{})
	for _, row := range rows {
		for name := range row {
			nameSet[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make(map[string]Column, len(names))
	for _, name := range names {
		col := make(Column, len(rows))
		for i, row := range rows {
			col[i] = row[name] // absent key yields nil, i.e. missing
		}
		cols[name] = col
	}
	return &Table{names: names, cols: cols, nrows: len(rows)}
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Column returns the named column and whether it exists. The returned slice
// is shared with the table and must not be modified.
func (t *Table) Column(name string) (Column, bool) {
	col, ok := t.cols[name]
	return col, ok
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// NumRows returns the row count shared by every column.
func (t *Table) NumRows() int {
	return t.nrows
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.names)
}

// SelectRows returns a new table containing only the rows where keep is true.
// The receiver is left untouched.
func (t *Table) SelectRows(keep []bool) (*Table, error) {
	if len(keep) != t.nrows {
		return nil, fmt.Errorf("table: selection mask has %d entries for %d rows", len(keep), t.nrows)
	}
	kept := 0
	for _, k := range keep {
		if k {
			kept++
		}
	}
	cols := make(map[string]Column, len(t.names))
	for _, name := range t.names {
		src := t.cols[name]
		col := make(Column, 0, kept)
		for i, k := range keep {
			if k {
				col = append(col, src[i])
			}
		}
		cols[name] = col
	}
	return &Table{names: append([]string(nil), t.names...), cols: cols, nrows: kept}, nil
}

// IsMissing reports whether a column entry denotes a missing value.
func IsMissing(v any) bool {
	return v == nil
}
