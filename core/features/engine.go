// Package features implements the multi-assay dispatcher: the public entry
// point that applies one feature filter consistently across every assay of a
// container. For each assay it evaluates the filter against that assay's
// row-metadata table, reconciles undefined outcomes under the caller's
// naRemove policy, applies structured-filter negation, and submits the whole
// mask collection to the container's row-subsetting operation in one call.
package features

import (
	"context"
	"fmt"

	"github.com/asaidimu/go-multiassay/core/assay"
	"github.com/asaidimu/go-multiassay/core/filter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine evaluates feature filters against multi-assay containers. Assays
// are independent, so evaluation fans out across them; results are written
// into per-assay slots, keeping name association and container order intact.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a filtering engine. A nil logger disables logging.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// FilterFeatures applies the filter to every assay of the container and
// returns a new container with the matching rows. The filter is either a
// structured *filter.VariableFilter (evaluated against its named field) or a
// filter.Expr (evaluated with the table's columns as variable bindings).
//
// naRemove decides the fate of rows whose comparison outcome is undefined
// because of missing metadata: false (the default policy) keeps them, true
// drops them. Failures intrinsic to a single assay — the field absent from
// its metadata, an expression that does not evaluate there — degrade that
// assay to an empty selection; failures intrinsic to the filter itself (an
// unsupported condition) abort the whole call. The input container is never
// mutated.
func (e *Engine) FilterFeatures(ctx context.Context, c assay.Container, flt filter.Filter, naRemove bool) (assay.Container, error) {
	if c == nil {
		return nil, fmt.Errorf("features: container must not be nil")
	}
	if flt == nil {
		return nil, fmt.Errorf("features: filter must not be nil")
	}

	names := c.Names()
	finals := make([][]bool, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, ok := c.Assay(name)
			if !ok {
				return fmt.Errorf("features: container names assay %q but does not hold it", name)
			}
			raw, err := e.evaluate(flt, a, name)
			if err != nil {
				return err
			}
			final := raw.Reconcile(naRemove)
			if vf, isVariable := flt.(*filter.VariableFilter); isVariable && vf.Not {
				// Negation inverts the reconciled mask, so rows kept (or
				// dropped) by the missing-value policy flip as well.
				final = filter.Invert(final)
			}
			e.logger.Debug("evaluated filter for assay",
				zap.String("assay", name),
				zap.Int("rows", len(final)),
				zap.Int("selected", filter.CountTrue(final)))
			finals[i] = final
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	masks := make(map[string][]bool, len(names))
	for i, name := range names {
		masks[name] = finals[i]
	}
	return c.SubsetRows(masks)
}

// evaluate produces the raw tri-state mask for one assay, selecting the
// strategy from the filter's representation.
func (e *Engine) evaluate(flt filter.Filter, a assay.Assay, name string) (filter.Mask, error) {
	tbl := a.RowData()
	switch f := flt.(type) {
	case *filter.VariableFilter:
		return f.Evaluate(tbl)
	case filter.Expr:
		mask, err := f.Eval(tbl)
		if err != nil {
			// Expression failures are local to this assay's schema; the
			// assay selects nothing and its siblings proceed normally.
			e.logger.Debug("expression not evaluable for assay, selecting no rows",
				zap.String("assay", name), zap.Error(err))
			return filter.AllFalse(tbl.NumRows()), nil
		}
		return mask, nil
	default:
		return nil, fmt.Errorf("features: unsupported filter representation %T", flt)
	}
}

// FilterFeatures applies a filter with a default engine. See
// Engine.FilterFeatures.
func FilterFeatures(ctx context.Context, c assay.Container, flt filter.Filter, naRemove bool) (assay.Container, error) {
	return NewEngine(nil).FilterFeatures(ctx, c, flt, naRemove)
}
