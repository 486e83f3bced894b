package units

import (
	"fmt"
	"strings"
)

// Unit label aliases accepted by the Parse functions. Keys are lower case.
//
//nolint:gochecknoglobals // Compile-time constant lookup tables.
var (
	distanceAliases = map[string]DistanceUnit{
		"km":         Kilometers,
		"kilometer":  Kilometers,
		"kilometers": Kilometers,
		"kilometre":  Kilometers,
		"kilometres": Kilometers,
		"mi":         Miles,
		"mile":       Miles,
		"miles":      Miles,
	}

	fuelAliases = map[string]FuelUnit{
		"l":            Liter,
		"liter":        Liter,
		"liters":       Liter,
		"litre":        Liter,
		"litres":       Liter,
		"us gal":       USGallon,
		"usgal":        USGallon,
		"us gallon":    USGallon,
		"gal":          USGallon,
		"gallon":       USGallon,
		"uk gal":       UKGallon,
		"ukgal":        UKGallon,
		"uk gallon":    UKGallon,
		"imperial gal": UKGallon,
	}

	mileageAliases = map[string]MileageUnit{
		"km/l":     KMPL,
		"kmpl":     KMPL,
		"l/100km":  L100KM,
		"l_100km":  L100KM,
		"l100km":   L100KM,
		"mpg":      MPGUS,
		"mpg (us)": MPGUS,
		"mpg_us":   MPGUS,
		"mpg us":   MPGUS,
		"mpg (uk)": MPGUK,
		"mpg_uk":   MPGUK,
		"mpg uk":   MPGUK,
	}
)

func normalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ParseDistanceUnit parses a distance unit label such as "km" or "miles".
// Matching is case-insensitive.
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	if u, ok := distanceAliases[normalizeLabel(s)]; ok {
		return u, nil
	}
	return 0, fmt.Errorf("%w: distance unit %q", ErrUnsupportedUnit, s)
}

// ParseFuelUnit parses a fuel unit label such as "Liter" or "UK Gal".
// A bare "gallon" means the US gallon.
func ParseFuelUnit(s string) (FuelUnit, error) {
	if u, ok := fuelAliases[normalizeLabel(s)]; ok {
		return u, nil
	}
	return 0, fmt.Errorf("%w: fuel unit %q", ErrUnsupportedUnit, s)
}

// ParseMileageUnit parses a mileage unit label such as "L/100km" or "MPG (UK)".
// A bare "MPG" means US miles per gallon.
func ParseMileageUnit(s string) (MileageUnit, error) {
	if u, ok := mileageAliases[normalizeLabel(s)]; ok {
		return u, nil
	}
	return 0, fmt.Errorf("%w: mileage unit %q", ErrUnsupportedUnit, s)
}
