package units

import "fmt"

// mileageRule describes how one mileage unit relates to km/L.
// Reciprocal units convert with ConsumptionBaseKm/value in both directions.
type mileageRule struct {
	toKMPL     float64
	fromKMPL   float64
	reciprocal bool
}

//nolint:gochecknoglobals // Closed lookup table indexed by unit tag.
var mileageRules = [...]mileageRule{
	KMPL:   {toKMPL: 1, fromKMPL: 1},
	L100KM: {reciprocal: true},
	MPGUS:  {toKMPL: KMPLPerMPGUS, fromKMPL: MPGUSPerKMPL},
	MPGUK:  {toKMPL: KMPLPerMPGUK, fromKMPL: MPGUKPerKMPL},
}

// Mileage is a fuel efficiency figure paired with its unit.
type Mileage struct {
	Value float64     `json:"value" yaml:"value"`
	Unit  MileageUnit `json:"unit"  yaml:"unit"`
}

// NewMileage returns a Mileage after validating value and unit.
func NewMileage(value float64, unit MileageUnit) (Mileage, error) {
	if value < 0 {
		return Mileage{}, fmt.Errorf("%w: mileage %v", ErrNegativeValue, value)
	}
	if !unit.Valid() {
		return Mileage{}, fmt.Errorf("%w: %s", ErrUnsupportedUnit, unit)
	}
	return Mileage{Value: value, Unit: unit}, nil
}

// In returns the mileage expressed in target.
func (m Mileage) In(target MileageUnit) (Mileage, error) {
	v, err := ConvertMileage(m.Value, m.Unit, target)
	if err != nil {
		return Mileage{}, err
	}
	return Mileage{Value: v, Unit: target}, nil
}

// KMPL returns the mileage in km/L.
func (m Mileage) KMPL() (float64, error) {
	return ConvertMileage(m.Value, m.Unit, KMPL)
}

// String formats the mileage as "<value> <unit>".
func (m Mileage) String() string {
	return fmt.Sprintf("%.2f %s", m.Value, m.Unit)
}

// ConvertMileage converts a fuel efficiency value through km/L.
//
// L/100km is a consumption figure, so both hops involving it are reciprocal
// and fail with ErrZeroDivisor when the value being inverted is zero.
func ConvertMileage(value float64, from, to MileageUnit) (float64, error) {
	if !from.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedUnit, from)
	}
	if !to.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedUnit, to)
	}
	if from == to {
		return value, nil
	}

	kmpl, err := applyMileageRule(value, mileageRules[from], true)
	if err != nil {
		return 0, fmt.Errorf("%s to %s: %w", from, KMPL, err)
	}
	out, err := applyMileageRule(kmpl, mileageRules[to], false)
	if err != nil {
		return 0, fmt.Errorf("%s to %s: %w", KMPL, to, err)
	}
	return out, nil
}

func applyMileageRule(value float64, rule mileageRule, toPivot bool) (float64, error) {
	if rule.reciprocal {
		if value == 0 {
			return 0, ErrZeroDivisor
		}
		return Round(ConsumptionBaseKm / value), nil
	}

	factor := rule.fromKMPL
	if toPivot {
		factor = rule.toKMPL
	}
	if factor == 1 {
		return value, nil
	}
	return Round(value * factor), nil
}
