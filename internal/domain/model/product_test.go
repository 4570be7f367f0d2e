package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestVariantHasCompareAtPrice(t *testing.T) {
	var v Variant
	assert.False(t, v.HasCompareAtPrice())

	zero := decimal.Zero
	v.CompareAtPrice = &zero
	assert.False(t, v.HasCompareAtPrice(), "a zero compare-at price is as good as none")

	positive := decimal.RequireFromString("29.99")
	v.CompareAtPrice = &positive
	assert.True(t, v.HasCompareAtPrice())
}

func TestVariantHasCost(t *testing.T) {
	var v Variant
	assert.False(t, v.HasCost())

	zero := decimal.Zero
	v.Cost = &zero
	assert.False(t, v.HasCost())

	positive := decimal.RequireFromString("8.50")
	v.Cost = &positive
	assert.True(t, v.HasCost())
}
