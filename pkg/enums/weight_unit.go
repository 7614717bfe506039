package enums

import "fmt"

// WeightUnit defines the available units for product and variant weights.
type WeightUnit string

const (
	WeightUnitKilogram WeightUnit = "kg"
	WeightUnitGram     WeightUnit = "g"
	WeightUnitPound    WeightUnit = "lb"
	WeightUnitOunce    WeightUnit = "oz"
)

var validWeightUnits = []WeightUnit{
	WeightUnitKilogram,
	WeightUnitGram,
	WeightUnitPound,
	WeightUnitOunce,
}

// String implements fmt.Stringer.
func (u WeightUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known WeightUnit.
func (u WeightUnit) IsValid() bool {
	for _, candidate := range validWeightUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseWeightUnit converts raw input into a WeightUnit.
func ParseWeightUnit(value string) (WeightUnit, error) {
	for _, candidate := range validWeightUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid weight unit %q", value)
}
