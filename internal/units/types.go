package units

import "fmt"

// DistanceUnit is a unit of length.
type DistanceUnit int

const (
	// Kilometers is the metric distance unit (km).
	Kilometers DistanceUnit = iota
	// Miles is the statute mile (mi).
	Miles
)

// FuelUnit is a unit of fuel volume.
type FuelUnit int

const (
	// Liter is the pivot fuel unit.
	Liter FuelUnit = iota
	// USGallon is the US liquid gallon.
	USGallon
	// UKGallon is the imperial gallon.
	UKGallon
)

// MileageUnit is a unit of fuel efficiency.
type MileageUnit int

const (
	// KMPL is kilometres per litre, the pivot mileage unit.
	KMPL MileageUnit = iota
	// L100KM is litres consumed per 100 km.
	L100KM
	// MPGUS is miles per US gallon.
	MPGUS
	// MPGUK is miles per UK gallon.
	MPGUK
)

//nolint:gochecknoglobals // Closed label tables indexed by unit tag.
var (
	distanceLabels = [...]string{Kilometers: "km", Miles: "mi"}
	fuelLabels     = [...]string{Liter: "Liter", USGallon: "US Gal", UKGallon: "UK Gal"}
	mileageLabels  = [...]string{KMPL: "km/L", L100KM: "L/100km", MPGUS: "MPG (US)", MPGUK: "MPG (UK)"}
)

// Valid reports whether u is a known distance unit.
func (u DistanceUnit) Valid() bool { return u >= 0 && int(u) < len(distanceLabels) }

// Valid reports whether u is a known fuel unit.
func (u FuelUnit) Valid() bool { return u >= 0 && int(u) < len(fuelLabels) }

// Valid reports whether u is a known mileage unit.
func (u MileageUnit) Valid() bool { return u >= 0 && int(u) < len(mileageLabels) }

// String returns the display label of the unit, e.g. "km".
func (u DistanceUnit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("DistanceUnit(%d)", int(u))
	}
	return distanceLabels[u]
}

// String returns the display label of the unit, e.g. "US Gal".
func (u FuelUnit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("FuelUnit(%d)", int(u))
	}
	return fuelLabels[u]
}

// String returns the display label of the unit, e.g. "L/100km".
func (u MileageUnit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("MileageUnit(%d)", int(u))
	}
	return mileageLabels[u]
}

// MarshalText implements encoding.TextMarshaler.
func (u DistanceUnit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedUnit, u)
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *DistanceUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseDistanceUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u FuelUnit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedUnit, u)
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *FuelUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseFuelUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u MileageUnit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedUnit, u)
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *MileageUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseMileageUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// DistanceUnits lists every distance unit in declaration order.
func DistanceUnits() []DistanceUnit { return []DistanceUnit{Kilometers, Miles} }

// FuelUnits lists every fuel unit in declaration order.
func FuelUnits() []FuelUnit { return []FuelUnit{Liter, USGallon, UKGallon} }

// MileageUnits lists every mileage unit in declaration order.
func MileageUnits() []MileageUnit { return []MileageUnit{KMPL, L100KM, MPGUS, MPGUK} }
