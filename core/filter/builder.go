package filter

// This file provides a fluent API for building filter expressions, so that
// callers can write
//
//	filter.And(
//		filter.Col("location").Eq("Mitochondrion"),
//		filter.Col("pval").Lt(0.05),
//	)
//
// instead of assembling Expr nodes by hand.

// ColumnRef starts an expression rooted at a metadata column.
type ColumnRef struct {
	name string
}

// Col references a metadata column by name.
func Col(name string) ColumnRef {
	return ColumnRef{name: name}
}

// Eq selects rows where the column equals the value.
func (c ColumnRef) Eq(value FilterValue) Expr {
	return &CompareExpr{Field: c.name, Op: OpEq, Value: value}
}

// Neq selects rows where the column differs from the value.
func (c ColumnRef) Neq(value FilterValue) Expr {
	return &CompareExpr{Field: c.name, Op: OpNeq, Value: value}
}

// Gt selects rows where the column is greater than the value.
func (c ColumnRef) Gt(value FilterValue) Expr {
	return &CompareExpr{Field: c.name, Op: OpGt, Value: value}
}

// Lt selects rows where the column is less than the value.
func (c ColumnRef) Lt(value FilterValue) Expr {
	return &CompareExpr{Field: c.name, Op: OpLt, Value: value}
}

// Gte selects rows where the column is greater than or equal to the value.
func (c ColumnRef) Gte(value FilterValue) Expr {
	return &CompareExpr{Field: c.name, Op: OpGte, Value: value}
}

// Lte selects rows where the column is less than or equal to the value.
func (c ColumnRef) Lte(value FilterValue) Expr {
	return &CompareExpr{Field: c.name, Op: OpLte, Value: value}
}

// In selects rows where the column equals any of the values.
func (c ColumnRef) In(values ...FilterValue) Expr {
	return &InExpr{Field: c.name, Values: values}
}

// Missing selects rows where the column value is missing.
func (c ColumnRef) Missing() Expr {
	return &MissingExpr{Field: c.name}
}

// Present selects rows where the column value is present.
func (c ColumnRef) Present() Expr {
	return &PresentExpr{Field: c.name}
}

// And combines expressions conjunctively.
func And(exprs ...Expr) Expr {
	return &AndExpr{Exprs: exprs}
}

// Or combines expressions disjunctively.
func Or(exprs ...Expr) Expr {
	return &OrExpr{Exprs: exprs}
}

// Not negates an expression.
func Not(expr Expr) Expr {
	return &NotExpr{Expr: expr}
}
