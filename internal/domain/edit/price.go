package edit

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceInputs are the per-variant amounts a price operation may read.
// CompareAtPrice and Cost are nil when the variant does not carry them.
type PriceInputs struct {
	Price          decimal.Decimal
	CompareAtPrice *decimal.Decimal
	Cost           *decimal.Decimal
}

// PriceOp computes a new price from the current amounts. Results are clamped
// to zero and rounded to two decimal places by Apply implementations. An op
// that cannot be computed for a variant (no compare-at price, no cost) returns
// the current price unchanged, which the caller records as a skip.
type PriceOp interface {
	Apply(in PriceInputs) decimal.Decimal
	priceOp()
}

var oneHundred = decimal.NewFromInt(100)

func clampPrice(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%s is required", name)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s must be a number: %w", name, err)
	}
	return d, nil
}

type SetPrice struct{ Amount decimal.Decimal }

func NewSetPrice(amount string) (SetPrice, error) {
	d, err := parseAmount("price", amount)
	if err != nil {
		return SetPrice{}, err
	}
	if d.IsNegative() {
		return SetPrice{}, fmt.Errorf("price must not be negative")
	}
	return SetPrice{Amount: d}, nil
}

func (o SetPrice) priceOp() {}

func (o SetPrice) Apply(PriceInputs) decimal.Decimal { return clampPrice(o.Amount) }

// AdjustPriceByAmount adds a signed fixed delta.
type AdjustPriceByAmount struct{ Delta decimal.Decimal }

func NewAdjustPriceByAmount(amount string) (AdjustPriceByAmount, error) {
	d, err := parseAmount("adjustment amount", amount)
	if err != nil {
		return AdjustPriceByAmount{}, err
	}
	return AdjustPriceByAmount{Delta: d}, nil
}

func (o AdjustPriceByAmount) priceOp() {}

func (o AdjustPriceByAmount) Apply(in PriceInputs) decimal.Decimal {
	return clampPrice(in.Price.Add(o.Delta))
}

// AdjustPriceByPercent scales the current price by a signed percentage.
// Decreases below -100% make no sense and are rejected.
type AdjustPriceByPercent struct{ Percent decimal.Decimal }

func NewAdjustPriceByPercent(percent string) (AdjustPriceByPercent, error) {
	p, err := parseAmount("adjustment percentage", percent)
	if err != nil {
		return AdjustPriceByPercent{}, err
	}
	if p.LessThan(oneHundred.Neg()) {
		return AdjustPriceByPercent{}, fmt.Errorf("adjustment percentage must not be below -100, got %s", p)
	}
	return AdjustPriceByPercent{Percent: p}, nil
}

func (o AdjustPriceByPercent) priceOp() {}

func (o AdjustPriceByPercent) Apply(in PriceInputs) decimal.Decimal {
	factor := oneHundred.Add(o.Percent).Div(oneHundred)
	return clampPrice(in.Price.Mul(factor))
}

// PercentOfCompareAt sets the price to p% of the compare-at price, p in (0,100].
type PercentOfCompareAt struct{ Percent decimal.Decimal }

func NewPercentOfCompareAt(percent string) (PercentOfCompareAt, error) {
	p, err := parseAmount("percentage", percent)
	if err != nil {
		return PercentOfCompareAt{}, err
	}
	if !p.IsPositive() || p.GreaterThan(oneHundred) {
		return PercentOfCompareAt{}, fmt.Errorf("percentage must be in (0,100], got %s", p)
	}
	return PercentOfCompareAt{Percent: p}, nil
}

func (o PercentOfCompareAt) priceOp() {}

func (o PercentOfCompareAt) Apply(in PriceInputs) decimal.Decimal {
	if in.CompareAtPrice == nil || !in.CompareAtPrice.IsPositive() {
		return in.Price
	}
	return clampPrice(in.CompareAtPrice.Mul(o.Percent).Div(oneHundred))
}

// PercentOfCost sets the price to p% of the unit cost. Markups above 100% are
// legitimate here.
type PercentOfCost struct{ Percent decimal.Decimal }

func NewPercentOfCost(percent string) (PercentOfCost, error) {
	p, err := parseAmount("percentage", percent)
	if err != nil {
		return PercentOfCost{}, err
	}
	if !p.IsPositive() {
		return PercentOfCost{}, fmt.Errorf("percentage must be positive, got %s", p)
	}
	return PercentOfCost{Percent: p}, nil
}

func (o PercentOfCost) priceOp() {}

func (o PercentOfCost) Apply(in PriceInputs) decimal.Decimal {
	if in.Cost == nil || !in.Cost.IsPositive() {
		return in.Price
	}
	return clampPrice(in.Cost.Mul(o.Percent).Div(oneHundred))
}

type RoundingMode string

const (
	RoundNearest RoundingMode = "nearest"
	RoundUp      RoundingMode = "up"
	RoundDown    RoundingMode = "down"
)

// RoundPrice snaps the price to a multiple of Value. Nearest mode works on the
// whole-unit part of the price, matching the storefront convention of pricing
// at .00 boundaries.
type RoundPrice struct {
	Mode  RoundingMode
	Value decimal.Decimal
}

func NewRoundPrice(mode, value string) (RoundPrice, error) {
	v, err := parseAmount("rounding value", value)
	if err != nil {
		return RoundPrice{}, err
	}
	if !v.IsPositive() {
		return RoundPrice{}, fmt.Errorf("rounding value must be positive, got %s", v)
	}
	switch m := RoundingMode(mode); m {
	case RoundNearest, RoundUp, RoundDown:
		return RoundPrice{Mode: m, Value: v}, nil
	}
	return RoundPrice{}, fmt.Errorf("unknown rounding type %q", mode)
}

func (o RoundPrice) priceOp() {}

func (o RoundPrice) Apply(in PriceInputs) decimal.Decimal {
	var snapped decimal.Decimal
	switch o.Mode {
	case RoundNearest:
		snapped = in.Price.Floor().Div(o.Value).Round(0).Mul(o.Value)
	case RoundUp:
		snapped = in.Price.Div(o.Value).Ceil().Mul(o.Value)
	case RoundDown:
		snapped = in.Price.Div(o.Value).Floor().Mul(o.Value)
	default:
		snapped = in.Price
	}
	return clampPrice(snapped)
}
