package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetWeightValueAndUnit(t *testing.T) {
	op, err := NewSetWeight("750", "g")
	require.NoError(t, err)

	got := op.Apply(Weight{Value: dec("1.5"), Unit: "kg"})
	assert.True(t, dec("750").Equal(got.Value))
	assert.Equal(t, "g", got.Unit)
}

func TestSetWeightUnitOnly(t *testing.T) {
	op, err := NewSetWeight("", "kg")
	require.NoError(t, err)

	got := op.Apply(Weight{Value: dec("500"), Unit: "g"})
	// The numeric value is reinterpreted in the new unit, not converted.
	assert.True(t, dec("500").Equal(got.Value))
	assert.Equal(t, "kg", got.Unit)
}

func TestSetWeightValidation(t *testing.T) {
	_, err := NewSetWeight("", "")
	require.Error(t, err)
	_, err = NewSetWeight("-5", "g")
	require.Error(t, err)
	_, err = NewSetWeight("1", "stone")
	require.Error(t, err)
}

func TestConvertWeight(t *testing.T) {
	cases := []struct {
		fromVal, fromUnit, toUnit, want string
	}{
		{"500", "g", "kg", "0.5"},
		{"1.5", "kg", "g", "1500"},
		{"1", "lb", "oz", "16"},
		{"2", "kg", "lb", "4.409"},
	}
	for _, tc := range cases {
		op, err := NewConvertWeight(tc.toUnit)
		require.NoError(t, err)
		got := op.Apply(Weight{Value: dec(tc.fromVal), Unit: tc.fromUnit})
		assert.True(t, dec(tc.want).Equal(got.Value), "%s %s -> %s got %s", tc.fromVal, tc.fromUnit, tc.toUnit, got.Value)
		assert.Equal(t, tc.toUnit, got.Unit)
	}
}

func TestConvertWeightSameUnit(t *testing.T) {
	op, err := NewConvertWeight("g")
	require.NoError(t, err)
	got := op.Apply(Weight{Value: dec("500"), Unit: "g"})
	assert.True(t, dec("500").Equal(got.Value))
}
