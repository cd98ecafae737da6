// Package assay defines the multi-assay container contracts consumed by the
// feature-filtering engine, together with an in-memory reference
// implementation. A container is an ordered mapping from assay name to assay;
// each assay couples an opaque data matrix with a row-metadata table. Row
// subsetting always produces a new container and never mutates the original.
package assay

import (
	"errors"
	"fmt"
	"math"

	"github.com/asaidimu/go-multiassay/core/table"
)

// Sentinel errors surfaced by container subsetting.
var (
	// ErrUnknownAssay is returned when a mask references an assay name the
	// container does not hold.
	ErrUnknownAssay = errors.New("unknown assay")

	// ErrMaskLength is returned when an assay's mask length differs from
	// its row count.
	ErrMaskLength = errors.New("mask length mismatch")
)

// Assay is one data matrix plus its row-metadata table. The filtering core
// only reads the metadata table; the matrix is carried along untouched.
type Assay interface {
	// RowData returns the per-feature metadata table.
	RowData() *table.Table

	// NumRows returns the number of features (matrix rows).
	NumRows() int
}

// Container is an ordered collection of named assays.
type Container interface {
	// Names returns the assay names in container order.
	Names() []string

	// Assay returns the named assay and whether it exists.
	Assay(name string) (Assay, bool)

	// SubsetRows returns a new container in which every assay named in
	// masks is row-subset by its boolean mask; assays without a mask are
	// carried unchanged. Columns and samples are untouched. The receiver
	// is never mutated.
	SubsetRows(masks map[string][]bool) (Container, error)
}

// NA is the missing-value marker inside a data matrix.
var NA = math.NaN()

// MemoryAssay is the in-memory Assay implementation: a dense float matrix
// (features x samples) with named samples and a row-metadata table.
type MemoryAssay struct {
	samples []string
	data    [][]float64
	rowData *table.Table
}

// NewAssay creates an in-memory assay. The matrix must have one row per
// metadata row and one column per sample.
func NewAssay(data [][]float64, samples []string, rowData *table.Table) (*MemoryAssay, error) {
	if rowData == nil {
		return nil, fmt.Errorf("assay: row metadata table must not be nil")
	}
	if len(data) != rowData.NumRows() {
		return nil, fmt.Errorf("assay: matrix has %d rows, metadata has %d", len(data), rowData.NumRows())
	}
	for i, row := range data {
		if len(row) != len(samples) {
			return nil, fmt.Errorf("assay: matrix row %d has %d values for %d samples", i, len(row), len(samples))
		}
	}
	return &MemoryAssay{
		samples: append([]string(nil), samples...),
		data:    data,
		rowData: rowData,
	}, nil
}

// RowData implements Assay.
func (a *MemoryAssay) RowData() *table.Table {
	return a.rowData
}

// NumRows implements Assay.
func (a *MemoryAssay) NumRows() int {
	return a.rowData.NumRows()
}

// Samples returns the sample names in column order.
func (a *MemoryAssay) Samples() []string {
	return append([]string(nil), a.samples...)
}

// Data returns the data matrix. The returned slices are shared with the
// assay and must not be modified.
func (a *MemoryAssay) Data() [][]float64 {
	return a.data
}

// subsetRows returns a new assay with only the rows where keep is true.
func (a *MemoryAssay) subsetRows(keep []bool) (*MemoryAssay, error) {
	if len(keep) != a.NumRows() {
		return nil, fmt.Errorf("assay: %w: %d entries for %d rows", ErrMaskLength, len(keep), a.NumRows())
	}
	rowData, err := a.rowData.SelectRows(keep)
	if err != nil {
		return nil, err
	}
	data := make([][]float64, 0, rowData.NumRows())
	for i, k := range keep {
		if k {
			data = append(data, a.data[i])
		}
	}
	return &MemoryAssay{samples: a.samples, data: data, rowData: rowData}, nil
}

// MemoryContainer is the in-memory Container implementation.
type MemoryContainer struct {
	names  []string
	assays map[string]*MemoryAssay
}

var _ Container = (*MemoryContainer)(nil)

// NewContainer creates an empty in-memory container.
func NewContainer() *MemoryContainer {
	return &MemoryContainer{assays: make(map[string]*MemoryAssay)}
}

// Add appends an assay under the given name, preserving insertion order.
func (c *MemoryContainer) Add(name string, a *MemoryAssay) error {
	if _, exists := c.assays[name]; exists {
		return fmt.Errorf("assay: container already holds an assay named %q", name)
	}
	c.names = append(c.names, name)
	c.assays[name] = a
	return nil
}

// Names implements Container.
func (c *MemoryContainer) Names() []string {
	return append([]string(nil), c.names...)
}

// Assay implements Container.
func (c *MemoryContainer) Assay(name string) (Assay, bool) {
	a, ok := c.assays[name]
	return a, ok
}

// Len returns the number of assays.
func (c *MemoryContainer) Len() int {
	return len(c.names)
}

// SubsetRows implements Container. Assays named in masks are row-subset into
// fresh assays; the rest are carried over as-is, which is safe because assays
// are read-only once inside a container.
func (c *MemoryContainer) SubsetRows(masks map[string][]bool) (Container, error) {
	for name := range masks {
		if _, ok := c.assays[name]; !ok {
			return nil, fmt.Errorf("assay: %w: %q", ErrUnknownAssay, name)
		}
	}
	out := NewContainer()
	for _, name := range c.names {
		a := c.assays[name]
		mask, ok := masks[name]
		if !ok {
			out.names = append(out.names, name)
			out.assays[name] = a
			continue
		}
		sub, err := a.subsetRows(mask)
		if err != nil {
			return nil, fmt.Errorf("assay: subsetting %q: %w", name, err)
		}
		out.names = append(out.names, name)
		out.assays[name] = sub
	}
	return out, nil
}
