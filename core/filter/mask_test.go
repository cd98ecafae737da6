package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTristate_Kleene(t *testing.T) {
	t.Run("And", func(t *testing.T) {
		tests := []struct {
			a, b, expected Tristate
		}{
			{TriTrue, TriTrue, TriTrue},
			{TriTrue, TriFalse, TriFalse},
			{TriTrue, TriUndef, TriUndef},
			{TriFalse, TriFalse, TriFalse},
			{TriFalse, TriUndef, TriFalse},
			{TriUndef, TriUndef, TriUndef},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.a.And(tt.b), "%s && %s", tt.a, tt.b)
			assert.Equal(t, tt.expected, tt.b.And(tt.a), "%s && %s", tt.b, tt.a)
		}
	})

	t.Run("Or", func(t *testing.T) {
		tests := []struct {
			a, b, expected Tristate
		}{
			{TriTrue, TriTrue, TriTrue},
			{TriTrue, TriFalse, TriTrue},
			{TriTrue, TriUndef, TriTrue},
			{TriFalse, TriFalse, TriFalse},
			{TriFalse, TriUndef, TriUndef},
			{TriUndef, TriUndef, TriUndef},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.a.Or(tt.b), "%s || %s", tt.a, tt.b)
			assert.Equal(t, tt.expected, tt.b.Or(tt.a), "%s || %s", tt.b, tt.a)
		}
	})

	t.Run("Not", func(t *testing.T) {
		assert.Equal(t, TriFalse, TriTrue.Not())
		assert.Equal(t, TriTrue, TriFalse.Not())
		assert.Equal(t, TriUndef, TriUndef.Not())
	})
}

func TestMask_Reconcile(t *testing.T) {
	mask := Mask{TriTrue, TriFalse, TriUndef}

	t.Run("Default keeps undefined", func(t *testing.T) {
		assert.Equal(t, []bool{true, false, true}, mask.Reconcile(false))
	})

	t.Run("naRemove drops undefined", func(t *testing.T) {
		assert.Equal(t, []bool{true, false, false}, mask.Reconcile(true))
	})

	t.Run("Defined entries unaffected by the flag", func(t *testing.T) {
		kept := mask.Reconcile(false)
		dropped := mask.Reconcile(true)
		assert.Equal(t, kept[0], dropped[0])
		assert.Equal(t, kept[1], dropped[1])
	})
}

func TestAllFalse(t *testing.T) {
	mask := AllFalse(3)
	assert.Len(t, mask, 3)
	for _, v := range mask {
		assert.Equal(t, TriFalse, v)
	}
	assert.Empty(t, AllFalse(0))
}

func TestInvert(t *testing.T) {
	in := []bool{true, false, true}
	out := Invert(in)
	assert.Equal(t, []bool{false, true, false}, out)
	assert.Equal(t, []bool{true, false, true}, in, "input not mutated")
}

func TestCountTrue(t *testing.T) {
	assert.Equal(t, 2, CountTrue([]bool{true, false, true}))
	assert.Equal(t, 0, CountTrue(nil))
}

func TestFromBool(t *testing.T) {
	assert.Equal(t, TriTrue, FromBool(true))
	assert.Equal(t, TriFalse, FromBool(false))
}
