package filter

import (
	"fmt"
	"strings"

	"github.com/asaidimu/go-multiassay/core/table"
)

// Evaluate runs the structured filter against one assay's row-metadata table
// and returns the raw tri-state mask, one entry per row.
//
// When the filter's field is not a column of the table the whole mask is
// definite false: the assay simply cannot match, which is not an error and
// not a missing-data case. Otherwise the condition is applied element-wise;
// a missing cell yields an undefined entry, to be resolved by Reconcile.
//
// The Not flag is intentionally ignored here; the dispatcher inverts the
// reconciled boolean mask, so negation also flips rows kept through the
// missing-value policy.
func (f *VariableFilter) Evaluate(tbl *table.Table) (Mask, error) {
	col, ok := tbl.Column(f.Field)
	if !ok {
		return AllFalse(tbl.NumRows()), nil
	}
	if !f.kind.Supports(f.Condition) {
		return nil, fmt.Errorf("filter: %w: %q for %s filter", ErrUnsupportedCondition, f.Condition, f.kind)
	}

	mask := make(Mask, len(col))
	for i, cell := range col {
		if table.IsMissing(cell) {
			mask[i] = TriUndef
			continue
		}
		// A list-valued filter matches when any of its values satisfies
		// the condition.
		res := TriFalse
		for _, v := range f.values {
			if f.compare(cell, v) {
				res = TriTrue
				break
			}
		}
		mask[i] = res
	}
	return mask, nil
}

// compare applies the filter's condition between one defined cell and one
// filter value. Cells that cannot be coerced to the variant's domain are a
// defined non-match, never undefined.
func (f *VariableFilter) compare(cell any, value FilterValue) bool {
	switch f.kind {
	case KindCharacter:
		cs, ok := cell.(string)
		if !ok {
			return false
		}
		vs := value.(string)
		switch f.Condition {
		case ConditionEquals:
			return cs == vs
		case ConditionNotEquals:
			return cs != vs
		case ConditionStartsWith:
			return strings.HasPrefix(cs, vs)
		case ConditionEndsWith:
			return strings.HasSuffix(cs, vs)
		case ConditionContains:
			// Plain substring match: the value is taken literally, so
			// punctuation such as '.' or '(' never acts as pattern syntax.
			return strings.Contains(cs, vs)
		}
	case KindNumeric:
		cn, ok := ToFloat64(cell)
		if !ok {
			return false
		}
		vn, _ := ToFloat64(value)
		switch f.Condition {
		case ConditionEquals:
			return cn == vn
		case ConditionNotEquals:
			return cn != vn
		case ConditionGreaterThan:
			return cn > vn
		case ConditionLessThan:
			return cn < vn
		case ConditionGreaterOrEqual:
			return cn >= vn
		case ConditionLessOrEqual:
			return cn <= vn
		}
	}
	return false
}
