package filter

import (
	"fmt"

	"github.com/asaidimu/go-multiassay/core/table"
)

// CompareOp is the comparison used by a CompareExpr node.
type CompareOp string

// Supported expression comparisons.
const (
	OpEq  CompareOp = "=="
	OpNeq CompareOp = "!="
	OpGt  CompareOp = ">"
	OpLt  CompareOp = "<"
	OpGte CompareOp = ">="
	OpLte CompareOp = "<="
)

// Expr is a node in a free-form boolean filter expression, the second filter
// representation. An expression references metadata columns by name and is
// evaluated lazily against each assay's row-metadata table, which supplies
// the column bindings. Unlike the structured filter there is no fixed
// condition vocabulary and no Not flag; negation is part of the expression.
//
// Every Expr is also a Filter, so expressions are accepted anywhere a
// structured filter is.
type Expr interface {
	Filter

	// Eval evaluates the expression against the table and returns the raw
	// tri-state mask. Any error (a referenced column absent from this
	// table, an ill-typed comparison) is reported to the caller, who is
	// expected to degrade this assay to an all-false mask rather than fail
	// the whole operation.
	Eval(tbl *table.Table) (Mask, error)
}

// AndExpr selects rows matching every sub-expression. Undefined operands
// follow Kleene logic: false dominates, otherwise undefined is contagious.
type AndExpr struct {
	Exprs []Expr
}

// OrExpr selects rows matching at least one sub-expression. Undefined
// operands follow Kleene logic: true dominates, otherwise undefined is
// contagious.
type OrExpr struct {
	Exprs []Expr
}

// NotExpr selects rows not matching the inner expression; undefined stays
// undefined.
type NotExpr struct {
	Expr Expr
}

// CompareExpr compares a metadata column against a scalar value, row-wise.
type CompareExpr struct {
	Field string
	Op    CompareOp
	Value FilterValue
}

// InExpr selects rows whose column value equals any of the listed values.
type InExpr struct {
	Field  string
	Values []FilterValue
}

// MissingExpr selects rows whose column value is missing. Its outcome is
// always defined, which makes missing-ness testable independently of the
// naRemove policy.
type MissingExpr struct {
	Field string
}

// PresentExpr selects rows whose column value is present.
type PresentExpr struct {
	Field string
}

func (*AndExpr) isFilter()     {}
func (*OrExpr) isFilter()      {}
func (*NotExpr) isFilter()     {}
func (*CompareExpr) isFilter() {}
func (*InExpr) isFilter()      {}
func (*MissingExpr) isFilter() {}
func (*PresentExpr) isFilter() {}

// Eval implements Expr.
func (e *AndExpr) Eval(tbl *table.Table) (Mask, error) {
	mask := make(Mask, tbl.NumRows())
	for i := range mask {
		mask[i] = TriTrue
	}
	for _, sub := range e.Exprs {
		m, err := sub.Eval(tbl)
		if err != nil {
			return nil, err
		}
		for i := range mask {
			mask[i] = mask[i].And(m[i])
		}
	}
	return mask, nil
}

// Eval implements Expr.
func (e *OrExpr) Eval(tbl *table.Table) (Mask, error) {
	mask := make(Mask, tbl.NumRows())
	for _, sub := range e.Exprs {
		m, err := sub.Eval(tbl)
		if err != nil {
			return nil, err
		}
		for i := range mask {
			mask[i] = mask[i].Or(m[i])
		}
	}
	return mask, nil
}

// Eval implements Expr.
func (e *NotExpr) Eval(tbl *table.Table) (Mask, error) {
	m, err := e.Expr.Eval(tbl)
	if err != nil {
		return nil, err
	}
	mask := make(Mask, len(m))
	for i, t := range m {
		mask[i] = t.Not()
	}
	return mask, nil
}

// Eval implements Expr.
func (e *CompareExpr) Eval(tbl *table.Table) (Mask, error) {
	col, ok := tbl.Column(e.Field)
	if !ok {
		return nil, fmt.Errorf("filter: column %q not bound in table", e.Field)
	}
	mask := make(Mask, len(col))
	for i, cell := range col {
		if table.IsMissing(cell) {
			mask[i] = TriUndef
			continue
		}
		switch e.Op {
		case OpEq:
			mask[i] = FromBool(looseEqual(cell, e.Value))
		case OpNeq:
			mask[i] = FromBool(!looseEqual(cell, e.Value))
		case OpGt, OpLt, OpGte, OpLte:
			cn, okC := ToFloat64(cell)
			vn, okV := ToFloat64(e.Value)
			if !okC || !okV {
				return nil, fmt.Errorf("filter: non-numeric operand for %q on column %q", e.Op, e.Field)
			}
			switch e.Op {
			case OpGt:
				mask[i] = FromBool(cn > vn)
			case OpLt:
				mask[i] = FromBool(cn < vn)
			case OpGte:
				mask[i] = FromBool(cn >= vn)
			case OpLte:
				mask[i] = FromBool(cn <= vn)
			}
		default:
			return nil, fmt.Errorf("filter: %w: %q in expression", ErrUnsupportedCondition, e.Op)
		}
	}
	return mask, nil
}

// Eval implements Expr.
func (e *InExpr) Eval(tbl *table.Table) (Mask, error) {
	col, ok := tbl.Column(e.Field)
	if !ok {
		return nil, fmt.Errorf("filter: column %q not bound in table", e.Field)
	}
	mask := make(Mask, len(col))
	for i, cell := range col {
		if table.IsMissing(cell) {
			mask[i] = TriUndef
			continue
		}
		for _, v := range e.Values {
			if looseEqual(cell, v) {
				mask[i] = TriTrue
				break
			}
		}
	}
	return mask, nil
}

// Eval implements Expr.
func (e *MissingExpr) Eval(tbl *table.Table) (Mask, error) {
	col, ok := tbl.Column(e.Field)
	if !ok {
		return nil, fmt.Errorf("filter: column %q not bound in table", e.Field)
	}
	mask := make(Mask, len(col))
	for i, cell := range col {
		mask[i] = FromBool(table.IsMissing(cell))
	}
	return mask, nil
}

// Eval implements Expr.
func (e *PresentExpr) Eval(tbl *table.Table) (Mask, error) {
	col, ok := tbl.Column(e.Field)
	if !ok {
		return nil, fmt.Errorf("filter: column %q not bound in table", e.Field)
	}
	mask := make(Mask, len(col))
	for i, cell := range col {
		mask[i] = FromBool(!table.IsMissing(cell))
	}
	return mask, nil
}

// looseEqual compares two scalars, comparing numerically when both sides
// coerce to numbers and falling back to direct equality otherwise.
func looseEqual(a, b any) bool {
	if fa, okA := ToFloat64(a); okA {
		if fb, okB := ToFloat64(b); okB {
			return fa == fb
		}
	}
	return a == b
}
