package filter

// Tristate is one entry of a raw row mask: a comparison outcome that is
// either a definite boolean or undefined. Undefined entries arise only from
// missing source data, never from a comparison that is defined and false.
type Tristate int8

// Tristate values.
const (
	TriFalse Tristate = iota
	TriTrue
	TriUndef
)

// String returns a short human-readable form, used in logs and test output.
func (t Tristate) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	default:
		return "undef"
	}
}

// FromBool lifts a definite boolean into a Tristate.
func FromBool(b bool) Tristate {
	if b {
		return TriTrue
	}
	return TriFalse
}

// And combines two tri-state values under Kleene three-valued logic: false
// dominates, otherwise any undefined operand makes the result undefined.
func (t Tristate) And(o Tristate) Tristate {
	if t == TriFalse || o == TriFalse {
		return TriFalse
	}
	if t == TriUndef || o == TriUndef {
		return TriUndef
	}
	return TriTrue
}

// Or combines two tri-state values under Kleene three-valued logic: true
// dominates, otherwise any undefined operand makes the result undefined.
func (t Tristate) Or(o Tristate) Tristate {
	if t == TriTrue || o == TriTrue {
		return TriTrue
	}
	if t == TriUndef || o == TriUndef {
		return TriUndef
	}
	return TriFalse
}

// Not negates a tri-state value; undefined stays undefined.
func (t Tristate) Not() Tristate {
	switch t {
	case TriTrue:
		return TriFalse
	case TriFalse:
		return TriTrue
	default:
		return TriUndef
	}
}

// Mask is a raw per-row selection mask for a single assay, one entry per row
// in that assay's row-metadata table.
type Mask []Tristate

// AllFalse returns a mask of n definite-false entries. It is the degraded
// result for an assay whose metadata lacks the filtered field or whose
// expression evaluation failed.
func AllFalse(n int) Mask {
	return make(Mask, n)
}

// Reconcile resolves every undefined entry into a definite keep/drop decision
// and returns the final boolean mask. With naRemove false (the default) an
// undefined comparison keeps the row; with naRemove true it drops it. Defined
// entries pass through untouched, so a comparison that is simply false is
// never affected by naRemove.
func (m Mask) Reconcile(naRemove bool) []bool {
	out := make([]bool, len(m))
	for i, t := range m {
		switch t {
		case TriTrue:
			out[i] = true
		case TriUndef:
			out[i] = !naRemove
		}
	}
	return out
}

// Invert returns the element-wise complement of a reconciled boolean mask.
// Structured-filter negation is applied here, once, after reconciliation.
func Invert(mask []bool) []bool {
	out := make([]bool, len(mask))
	for i, b := range mask {
		out[i] = !b
	}
	return out
}

// CountTrue returns the number of selected rows in a reconciled mask.
func CountTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}
