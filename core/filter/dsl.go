// Package filter defines the feature-filter specifications applied to assay
// row-metadata tables, and the evaluators that turn a specification into a
// per-row selection mask. Two representations are supported: the structured
// VariableFilter (a typed field/condition/value record) and the free-form
// boolean expression tree (Expr). Both produce tri-state masks that are
// resolved into plain boolean masks by Mask.Reconcile.
package filter

import (
	"errors"
	"fmt"
)

// Condition is the comparison applied between a metadata column and a
// structured filter's value.
type Condition string

// Supported conditions. The character and numeric filter variants each accept
// a subset of this vocabulary; see Kind.Supports.
const (
	ConditionEquals         Condition = "equals"
	ConditionNotEquals      Condition = "not-equals"
	ConditionStartsWith     Condition = "starts-with"
	ConditionEndsWith       Condition = "ends-with"
	ConditionContains       Condition = "contains"
	ConditionGreaterThan    Condition = "greater-than"
	ConditionLessThan       Condition = "less-than"
	ConditionGreaterOrEqual Condition = "greater-or-equal"
	ConditionLessOrEqual    Condition = "less-or-equal"
)

// FilterValue represents the value side of a filter condition. It can be a
// scalar or a homogeneous list of scalars.
type FilterValue any

// Kind identifies the variant of a structured filter, inferred from the
// runtime type of its value at construction time.
type Kind string

// Filter variants.
const (
	KindCharacter Kind = "character"
	KindNumeric   Kind = "numeric"
)

var characterConditions = map[Condition]struct{}{
	ConditionEquals:     {},
	ConditionNotEquals:  {},
	ConditionStartsWith: {},
	ConditionEndsWith:   {},
	ConditionContains:   {},
}

var numericConditions = map[Condition]struct{}{
	ConditionEquals:         {},
	ConditionNotEquals:      {},
	ConditionGreaterThan:    {},
	ConditionLessThan:       {},
	ConditionGreaterOrEqual: {},
	ConditionLessOrEqual:    {},
}

// Supports reports whether the given condition belongs to this variant's
// vocabulary.
func (k Kind) Supports(c Condition) bool {
	switch k {
	case KindCharacter:
		_, ok := characterConditions[c]
		return ok
	case KindNumeric:
		_, ok := numericConditions[c]
		return ok
	default:
		return false
	}
}

// Sentinel errors for the filter error taxonomy. Construction and
// configuration errors abort a whole filter operation; anything intrinsic to
// a single assay's data never surfaces as an error.
var (
	// ErrUndefinedValueType is returned when a filter value is neither
	// wholly numeric nor wholly textual.
	ErrUndefinedValueType = errors.New("undefined value type")

	// ErrUnsupportedCondition is returned at evaluation time when a filter
	// carries a condition outside its variant's vocabulary.
	ErrUnsupportedCondition = errors.New("unsupported condition")
)

// Filter is the union of the two filter representations. It is a sealed
// interface: the only implementations are *VariableFilter and the Expr nodes.
// The dispatcher selects the evaluation strategy by type switch.
type Filter interface {
	isFilter()
}

// VariableFilter is the structured filter specification: select rows whose
// named metadata field satisfies a condition against a value. The variant
// (character or numeric) is fixed at construction from the value's type.
// A VariableFilter is an immutable value object.
type VariableFilter struct {
	Field     string
	Value     FilterValue
	Condition Condition
	Not       bool

	kind   Kind
	values []FilterValue // normalized value list
}

func (*VariableFilter) isFilter() {}

// Kind returns the filter's variant.
func (f *VariableFilter) Kind() Kind {
	return f.kind
}

// NewVariableFilter constructs a structured filter for the given field. The
// value may be a scalar or a non-empty homogeneous list; a wholly numeric
// value yields a numeric filter, a wholly textual one a character filter, and
// anything else is a construction error. An empty condition defaults to
// ConditionEquals. The condition vocabulary is deliberately not validated
// here; an unsupported condition surfaces when the filter is evaluated.
func NewVariableFilter(field string, value FilterValue, condition Condition, not bool) (*VariableFilter, error) {
	if field == "" {
		return nil, fmt.Errorf("filter: field name must not be empty")
	}
	if condition == "" {
		condition = ConditionEquals
	}
	values, kind, err := normalizeValue(value)
	if err != nil {
		return nil, err
	}
	return &VariableFilter{
		Field:     field,
		Value:     value,
		Condition: condition,
		Not:       not,
		kind:      kind,
		values:    values,
	}, nil
}

// normalizeValue flattens the value into a list and infers the filter variant
// from the element types.
func normalizeValue(value FilterValue) ([]FilterValue, Kind, error) {
	var list []FilterValue
	switch v := value.(type) {
	case nil:
		return nil, "", fmt.Errorf("filter: %w: nil value", ErrUndefinedValueType)
	case []FilterValue:
		list = v
	case []string:
		list = make([]FilterValue, len(v))
		for i, s := range v {
			list[i] = s
		}
	case []int:
		list = make([]FilterValue, len(v))
		for i, n := range v {
			list[i] = n
		}
	case []float64:
		list = make([]FilterValue, len(v))
		for i, n := range v {
			list[i] = n
		}
	default:
		list = []FilterValue{value}
	}
	if len(list) == 0 {
		return nil, "", fmt.Errorf("filter: %w: empty value list", ErrUndefinedValueType)
	}

	kind, err := kindOf(list[0])
	if err != nil {
		return nil, "", err
	}
	for _, v := range list[1:] {
		k, err := kindOf(v)
		if err != nil {
			return nil, "", err
		}
		if k != kind {
			return nil, "", fmt.Errorf("filter: %w: mixed %s and %s values", ErrUndefinedValueType, kind, k)
		}
	}
	return list, kind, nil
}

// kindOf classifies a single scalar. Strings are always character values,
// even when they parse as numbers.
func kindOf(v FilterValue) (Kind, error) {
	switch v.(type) {
	case string:
		return KindCharacter, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return KindNumeric, nil
	default:
		return "", fmt.Errorf("filter: %w: %T", ErrUndefinedValueType, v)
	}
}
