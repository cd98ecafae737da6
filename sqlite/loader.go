// Package sqlite materializes multi-assay containers from a SQLite database.
// Each assay is backed by one table: the configured sample columns form the
// assay's data matrix and every remaining column becomes part of the
// row-metadata table, with SQL NULL mapped to a missing value.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/asaidimu/go-multiassay/core/assay"
	"github.com/asaidimu/go-multiassay/core/table"
	"go.uber.org/zap"
)

// AssaySpec names one assay and the table backing it. SampleColumns lists
// the quantitative columns, in sample order; they must be numeric.
type AssaySpec struct {
	Name          string
	Table         string
	SampleColumns []string
}

// Loader reads assays out of a SQLite database into an in-memory container.
type Loader struct {
	db     *sql.DB
	specs  []AssaySpec
	logger *zap.Logger
}

// NewLoader creates a loader for the given assay specs.
func NewLoader(db *sql.DB, specs []AssaySpec, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{db: db, specs: specs, logger: logger}
}

// Load reads every configured assay and assembles the container, preserving
// spec order.
func (l *Loader) Load(ctx context.Context) (assay.Container, error) {
	if len(l.specs) == 0 {
		return nil, fmt.Errorf("sqlite: no assay specs configured")
	}
	c := assay.NewContainer()
	for _, spec := range l.specs {
		a, err := l.loadAssay(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("sqlite: loading assay %q: %w", spec.Name, err)
		}
		if err := c.Add(spec.Name, a); err != nil {
			return nil, err
		}
		l.logger.Debug("loaded assay",
			zap.String("assay", spec.Name),
			zap.String("table", spec.Table),
			zap.Int("rows", a.NumRows()))
	}
	return c, nil
}

// loadAssay reads one table and splits its columns into the data matrix and
// the row-metadata table.
func (l *Loader) loadAssay(ctx context.Context, spec AssaySpec) (*assay.MemoryAssay, error) {
	rows, err := l.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", quoteIdentifier(spec.Table)))
	if err != nil {
		return nil, fmt.Errorf("querying table: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	sampleIdx := make(map[string]int, len(spec.SampleColumns))
	for i, name := range spec.SampleColumns {
		sampleIdx[name] = i
	}
	var metaNames []string
	for _, col := range columns {
		if _, isSample := sampleIdx[col]; !isSample {
			metaNames = append(metaNames, col)
		}
	}
	for _, name := range spec.SampleColumns {
		if !contains(columns, name) {
			return nil, fmt.Errorf("sample column %q not in table %q", name, spec.Table)
		}
	}

	metaCols := make(map[string]table.Column, len(metaNames))
	for _, name := range metaNames {
		metaCols[name] = table.Column{}
	}
	var matrix [][]float64

	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		matrixRow := make([]float64, len(spec.SampleColumns))
		for i, col := range columns {
			val := normalizeValue(values[i])
			if j, isSample := sampleIdx[col]; isSample {
				n, err := toMatrixValue(val)
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", col, err)
				}
				matrixRow[j] = n
				continue
			}
			metaCols[col] = append(metaCols[col], val)
		}
		matrix = append(matrix, matrixRow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	rowData, err := table.New(metaNames, metaCols)
	if err != nil {
		return nil, err
	}
	return assay.NewAssay(matrix, spec.SampleColumns, rowData)
}

// normalizeValue converts driver values into the scalar forms the metadata
// table works with. SQL NULL stays nil, i.e. missing.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	default:
		return val
	}
}

// toMatrixValue coerces a sample cell into a float64; NULL becomes NA.
func toMatrixValue(v any) (float64, error) {
	switch val := v.(type) {
	case nil:
		return assay.NA, nil
	case int64:
		return float64(val), nil
	case float64:
		return val, nil
	default:
		return 0, fmt.Errorf("sample value %v (%T) is not numeric", v, v)
	}
}

// quoteIdentifier quotes a SQLite identifier.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
