package units

import "fmt"

// litersPerUnit maps each fuel unit to its volume in litres.
//
//nolint:gochecknoglobals // Closed lookup table indexed by unit tag.
var litersPerUnit = [...]float64{
	Liter:    1,
	USGallon: LitersPerUSGallon,
	UKGallon: LitersPerUKGallon,
}

// FuelQuantity is a volume of fuel paired with its unit.
type FuelQuantity struct {
	Value float64  `json:"value" yaml:"value"`
	Unit  FuelUnit `json:"unit"  yaml:"unit"`
}

// NewFuelQuantity returns a FuelQuantity after validating value and unit.
func NewFuelQuantity(value float64, unit FuelUnit) (FuelQuantity, error) {
	if value < 0 {
		return FuelQuantity{}, fmt.Errorf("%w: fuel quantity %v", ErrNegativeValue, value)
	}
	if !unit.Valid() {
		return FuelQuantity{}, fmt.Errorf("%w: %s", ErrUnsupportedUnit, unit)
	}
	return FuelQuantity{Value: value, Unit: unit}, nil
}

// In returns the quantity expressed in target.
func (q FuelQuantity) In(target FuelUnit) (FuelQuantity, error) {
	v, err := ConvertFuelQuantity(q.Value, q.Unit, target)
	if err != nil {
		return FuelQuantity{}, err
	}
	return FuelQuantity{Value: v, Unit: target}, nil
}

// String formats the quantity as "<value> <unit>".
func (q FuelQuantity) String() string {
	return fmt.Sprintf("%.2f %s", q.Value, q.Unit)
}

// FuelPrice is a price of fuel per one unit of volume.
// The currency is implied by the session.
type FuelPrice struct {
	Value   float64  `json:"value"    yaml:"value"`
	PerUnit FuelUnit `json:"per_unit" yaml:"per_unit"`
}

// NewFuelPrice returns a FuelPrice after validating value and unit.
func NewFuelPrice(value float64, perUnit FuelUnit) (FuelPrice, error) {
	if value < 0 {
		return FuelPrice{}, fmt.Errorf("%w: fuel price %v", ErrNegativeValue, value)
	}
	if !perUnit.Valid() {
		return FuelPrice{}, fmt.Errorf("%w: %s", ErrUnsupportedUnit, perUnit)
	}
	return FuelPrice{Value: value, PerUnit: perUnit}, nil
}

// In returns the price expressed per target unit.
func (p FuelPrice) In(target FuelUnit) (FuelPrice, error) {
	v, err := ConvertFuelPrice(p.Value, p.PerUnit, target)
	if err != nil {
		return FuelPrice{}, err
	}
	return FuelPrice{Value: v, PerUnit: target}, nil
}

// String formats the price as "<value> / <unit>".
func (p FuelPrice) String() string {
	return fmt.Sprintf("%.2f / %s", p.Value, p.PerUnit)
}

// ConvertFuelQuantity converts a fuel volume through litres.
func ConvertFuelQuantity(value float64, from, to FuelUnit) (float64, error) {
	if err := checkFuelUnits(from, to); err != nil {
		return 0, err
	}
	if from == to {
		return value, nil
	}

	liters := value
	if from != Liter {
		liters = Round(value * litersPerUnit[from])
	}
	if to == Liter {
		return liters, nil
	}
	return Round(liters / litersPerUnit[to]), nil
}

// ConvertFuelPrice converts a price per volume through price per litre.
// Price moves opposite to volume: a per-gallon price is divided by the
// gallon's litre count to get the per-litre price.
func ConvertFuelPrice(value float64, from, to FuelUnit) (float64, error) {
	if err := checkFuelUnits(from, to); err != nil {
		return 0, err
	}
	if from == to {
		return value, nil
	}

	perLiter := value
	if from != Liter {
		perLiter = Round(value / litersPerUnit[from])
	}
	if to == Liter {
		return perLiter, nil
	}
	return Round(perLiter * litersPerUnit[to]), nil
}

func checkFuelUnits(from, to FuelUnit) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedUnit, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedUnit, to)
	}
	return nil
}
