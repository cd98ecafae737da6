package filter

import (
	"testing"

	"github.com/asaidimu/go-multiassay/core/table"
	"github.com/stretchr/testify/assert"
)

func exprTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([]string{"location", "pval"}, map[string]table.Column{
		"location": {"Mitochondrion", "Cytoplasm", nil},
		"pval":     {0.01, 0.2, 0.03},
	})
	assert.NoError(t, err)
	return tbl
}

func TestCompareExpr_Eval(t *testing.T) {
	tbl := exprTable(t)

	t.Run("Eq", func(t *testing.T) {
		mask, err := Col("location").Eq("Mitochondrion").Eval(tbl)
		assert.NoError(t, err)
		assert.Equal(t, Mask{TriTrue, TriFalse, TriUndef}, mask)
	})

	t.Run("Neq", func(t *testing.T) {
		mask, err := Col("location").Neq("Mitochondrion").Eval(tbl)
		assert.NoError(t, err)
		assert.Equal(t, Mask{TriFalse, TriTrue, TriUndef}, mask)
	})

	t.Run("Ordering", func(t *testing.T) {
		mask, err := Col("pval").Lt(0.05).Eval(tbl)
		assert.NoError(t, err)
		assert.Equal(t, Mask{TriTrue, TriFalse, TriTrue}, mask)

		mask, err = Col("pval").Gte(0.2).Eval(tbl)
		assert.NoError(t, err)
		assert.Equal(t, Mask{TriFalse, TriTrue, TriFalse}, mask)
	})

	t.Run("Numeric equality coerces types", func(t *testing.T) {
		tbl, err := table.New([]string{"n"}, map[string]table.Column{"n": {1, 2.0}})
		assert.NoError(t, err)
		mask, err := Col("n").Eq(2).Eval(tbl)
		assert.NoError(t, err)
		assert.Equal(t, Mask{TriFalse, TriTrue}, mask)
	})

	t.Run("Absent column is an error", func(t *testing.T) {
		_, err := Col("nonexistent").Eq("x").Eval(tbl)
		assert.Error(t, err)
	})

	t.Run("Ordering on strings is an error", func(t *testing.T) {
		_, err := Col("location").Gt(1).Eval(tbl)
		assert.Error(t, err)
	})
}

func TestInExpr_Eval(t *testing.T) {
	tbl := exprTable(t)
	mask, err := Col("location").In("Mitochondrion", "Cytoplasm").Eval(tbl)
	assert.NoError(t, err)
	assert.Equal(t, Mask{TriTrue, TriTrue, TriUndef}, mask)
}

func TestMissingPresent_Eval(t *testing.T) {
	tbl := exprTable(t)

	mask, err := Col("location").Missing().Eval(tbl)
	assert.NoError(t, err)
	assert.Equal(t, Mask{TriFalse, TriFalse, TriTrue}, mask, "missing-ness is always a defined outcome")

	mask, err = Col("location").Present().Eval(tbl)
	assert.NoError(t, err)
	assert.Equal(t, Mask{TriTrue, TriTrue, TriFalse}, mask)
}

func TestLogicalExprs_Eval(t *testing.T) {
	tbl := exprTable(t)

	t.Run("And", func(t *testing.T) {
		mask, err := And(
			Col("pval").Lt(0.05),
			Col("location").Eq("Mitochondrion"),
		).Eval(tbl)
		assert.NoError(t, err)
		// row 3: pval passes but location is missing, so the conjunction
		// stays undefined.
		assert.Equal(t, Mask{TriTrue, TriFalse, TriUndef}, mask)
	})

	t.Run("And with false dominating undefined", func(t *testing.T) {
		mask, err := And(
			Col("pval").Gt(0.1),
			Col("location").Eq("Mitochondrion"),
		).Eval(tbl)
		assert.NoError(t, err)
		assert.Equal(t, TriFalse, mask[2], "false && undef is false")
	})

	t.Run("Or with true dominating undefined", func(t *testing.T) {
		mask, err := Or(
			Col("location").Eq("Mitochondrion"),
			Col("pval").Lt(0.05),
		).Eval(tbl)
		assert.NoError(t, err)
		assert.Equal(t, Mask{TriTrue, TriFalse, TriTrue}, mask)
	})

	t.Run("Not", func(t *testing.T) {
		mask, err := Not(Col("location").Eq("Mitochondrion")).Eval(tbl)
		assert.NoError(t, err)
		assert.Equal(t, Mask{TriFalse, TriTrue, TriUndef}, mask)
	})

	t.Run("Empty And matches everything", func(t *testing.T) {
		mask, err := And().Eval(tbl)
		assert.NoError(t, err)
		assert.Equal(t, Mask{TriTrue, TriTrue, TriTrue}, mask)
	})

	t.Run("Empty Or matches nothing", func(t *testing.T) {
		mask, err := Or().Eval(tbl)
		assert.NoError(t, err)
		assert.Equal(t, AllFalse(3), mask)
	})

	t.Run("Error propagates through logic nodes", func(t *testing.T) {
		_, err := And(Col("pval").Lt(0.05), Col("nonexistent").Eq(1)).Eval(tbl)
		assert.Error(t, err)
	})
}

func TestRepresentationEquivalence(t *testing.T) {
	// VariableFilter("location", "Mitochondrion") and the expression
	// location == "Mitochondrion" must select the same rows.
	tbl := exprTable(t)

	f, err := NewVariableFilter("location", "Mitochondrion", "", false)
	assert.NoError(t, err)
	structured, err := f.Evaluate(tbl)
	assert.NoError(t, err)

	expr, err := Col("location").Eq("Mitochondrion").Eval(tbl)
	assert.NoError(t, err)

	assert.Equal(t, structured, expr)
}
