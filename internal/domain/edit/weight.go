package edit

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Weight units use the REST spelling; the GraphQL adapter maps them to its
// enum values.
const (
	UnitGrams     = "g"
	UnitKilograms = "kg"
	UnitOunces    = "oz"
	UnitPounds    = "lb"
)

var gramsPerUnit = map[string]decimal.Decimal{
	UnitGrams:     decimal.NewFromInt(1),
	UnitKilograms: decimal.NewFromInt(1000),
	UnitOunces:    decimal.RequireFromString("28.349523125"),
	UnitPounds:    decimal.RequireFromString("453.59237"),
}

func ValidWeightUnit(unit string) bool {
	_, ok := gramsPerUnit[unit]
	return ok
}

type Weight struct {
	Value decimal.Decimal
	Unit  string
}

// SetWeight overrides the value and/or the unit. A request that names only a
// unit keeps the current numeric value, and vice versa.
type SetWeight struct {
	value *decimal.Decimal
	unit  string
}

func NewSetWeight(value, unit string) (SetWeight, error) {
	value = strings.TrimSpace(value)
	unit = strings.TrimSpace(unit)
	if value == "" && unit == "" {
		return SetWeight{}, fmt.Errorf("weight value or weight unit is required")
	}
	op := SetWeight{}
	if value != "" {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return SetWeight{}, fmt.Errorf("weight value must be a number: %w", err)
		}
		if d.IsNegative() {
			return SetWeight{}, fmt.Errorf("weight value must not be negative")
		}
		op.value = &d
	}
	if unit != "" {
		if !ValidWeightUnit(unit) {
			return SetWeight{}, fmt.Errorf("unknown weight unit %q", unit)
		}
		op.unit = unit
	}
	return op, nil
}

func (o SetWeight) Apply(current Weight) Weight {
	next := current
	if o.value != nil {
		next.Value = *o.value
	}
	if o.unit != "" {
		next.Unit = o.unit
	}
	return next
}

// ConvertWeight changes the unit while preserving the mass, rounded to three
// decimal places.
type ConvertWeight struct {
	unit string
}

func NewConvertWeight(unit string) (ConvertWeight, error) {
	unit = strings.TrimSpace(unit)
	if !ValidWeightUnit(unit) {
		return ConvertWeight{}, fmt.Errorf("unknown weight unit %q", unit)
	}
	return ConvertWeight{unit: unit}, nil
}

func (o ConvertWeight) Apply(current Weight) Weight {
	from, ok := gramsPerUnit[current.Unit]
	if !ok || current.Unit == o.unit {
		return Weight{Value: current.Value, Unit: o.unit}
	}
	grams := current.Value.Mul(from)
	converted := grams.Div(gramsPerUnit[o.unit]).Round(3)
	return Weight{Value: converted, Unit: o.unit}
}
