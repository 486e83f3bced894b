package units

import "fmt"

// Distance is a length paired with its unit.
type Distance struct {
	Value float64      `json:"value" yaml:"value"`
	Unit  DistanceUnit `json:"unit"  yaml:"unit"`
}

// NewDistance returns a Distance after checking the value is not negative
// and the unit is known.
func NewDistance(value float64, unit DistanceUnit) (Distance, error) {
	if value < 0 {
		return Distance{}, fmt.Errorf("%w: distance %v", ErrNegativeValue, value)
	}
	if !unit.Valid() {
		return Distance{}, fmt.Errorf("%w: %s", ErrUnsupportedUnit, unit)
	}
	return Distance{Value: value, Unit: unit}, nil
}

// In returns the distance expressed in target.
func (d Distance) In(target DistanceUnit) (Distance, error) {
	v, err := ConvertDistance(d.Value, d.Unit, target)
	if err != nil {
		return Distance{}, err
	}
	return Distance{Value: v, Unit: target}, nil
}

// String formats the distance as "<value> <unit>".
func (d Distance) String() string {
	return fmt.Sprintf("%.2f %s", d.Value, d.Unit)
}

// ConvertDistance converts value between km and mi in a single rounded hop.
// There is no pivot for distances.
func ConvertDistance(value float64, from, to DistanceUnit) (float64, error) {
	if !from.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedUnit, from)
	}
	if !to.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedUnit, to)
	}
	if from == to {
		return value, nil
	}

	switch {
	case from == Kilometers && to == Miles:
		return Round(value / KmPerMile), nil
	case from == Miles && to == Kilometers:
		return Round(value * KmPerMile), nil
	default:
		return 0, fmt.Errorf("%w: %s to %s", ErrUnsupportedUnit, from, to)
	}
}
