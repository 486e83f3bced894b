package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/engine"
	"github.com/rshade/breakeven/internal/units"
)

// Session input keys. Each is both a calc flag name and an interactive form key.
const (
	keyCurrency       = "currency"
	keyFuelPrice      = "fuel-price"
	keyFuelUnit       = "fuel-unit"
	keyMileageUnit    = "mileage-unit"
	keyDistanceUnit   = "distance-unit"
	keyAnnualDistance = "annual-distance"
	keySimulateHike   = "simulate-hike"
	keyHikePct        = "hike-pct"
	keyFuelCarPrice   = "fuel-car-price"
	keyHybridPrice    = "hybrid-price"
	keyFuelCarMileage = "fuel-car-mileage"
	keyHybridMileage  = "hybrid-mileage"
)

//nolint:gochecknoglobals // Fixed display order of session inputs.
var sessionKeys = []string{
	keyCurrency, keyFuelPrice, keyFuelUnit, keyMileageUnit, keyDistanceUnit, keyAnnualDistance,
	keySimulateHike, keyHikePct, keyFuelCarPrice, keyHybridPrice, keyFuelCarMileage, keyHybridMileage,
}

// Session is one fully resolved calculation: settings plus both cars.
type Session struct {
	Region   config.RegionDefaults
	Settings config.Settings
	Fuel     engine.Car
	Hybrid   engine.Car
}

// addSessionFlags registers the session input flags on cmd. Every flag is
// optional; unset flags fall back to the currency region defaults.
func addSessionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String(keyCurrency, "", "currency region (AUD, INR, USD, GBP or one defined in config)")
	f.Float64(keyFuelPrice, 0, "fuel price per fuel unit")
	f.String(keyFuelUnit, "", `fuel unit ("Liter", "US Gal", "UK Gal")`)
	f.String(keyMileageUnit, "", `mileage unit ("km/L", "L/100km", "MPG (US)", "MPG (UK)")`)
	f.String(keyDistanceUnit, "", `distance unit ("km", "mi")`)
	f.Float64(keyAnnualDistance, 0, "distance driven per year, in the distance unit")
	f.Bool(keySimulateHike, false, "simulate a yearly fuel price increase")
	f.Float64(keyHikePct, 0, "yearly fuel price increase in percent (0-15); implies --simulate-hike")
	f.Float64(keyFuelCarPrice, 0, "purchase price of the fuel car")
	f.Float64(keyHybridPrice, 0, "purchase price of the hybrid car")
	f.Float64(keyFuelCarMileage, 0, "mileage of the fuel car, in the mileage unit")
	f.Float64(keyHybridMileage, 0, "mileage of the hybrid car, in the mileage unit")
}

// sessionOverrides collects the session flags the user set explicitly.
func sessionOverrides(cmd *cobra.Command) map[string]string {
	overrides := make(map[string]string)
	for _, key := range sessionKeys {
		if flag := cmd.Flags().Lookup(key); flag != nil && flag.Changed {
			overrides[key] = flag.Value.String()
		}
	}
	return overrides
}

// mergeOverrides returns base with every entry of top applied over it.
func mergeOverrides(base, top map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(top))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range top {
		merged[k] = v
	}
	return merged
}

// BuildSession resolves a session from the config region table and the
// given input overrides, keyed by flag name.
func BuildSession(cfg *config.Config, overrides map[string]string) (*Session, error) {
	cur := cfg.Defaults.Currency
	if v := strings.TrimSpace(overrides[keyCurrency]); v != "" {
		cur = config.Currency(v)
	}
	region, err := cfg.RegionTable().Lookup(cur)
	if err != nil {
		return nil, err
	}

	in, err := settingsInput(overrides)
	if err != nil {
		return nil, err
	}
	settings, err := config.NewSettings(cur, region, in)
	if err != nil {
		return nil, err
	}

	fuelCarPrice, err := floatOr(overrides, keyFuelCarPrice, region.FuelCarPrice)
	if err != nil {
		return nil, err
	}
	hybridPrice, err := floatOr(overrides, keyHybridPrice, region.HybridCarPrice)
	if err != nil {
		return nil, err
	}
	fuelMileage, err := carMileage(overrides, keyFuelCarMileage, region.FuelCarMileage, region, settings)
	if err != nil {
		return nil, err
	}
	hybridMileage, err := carMileage(overrides, keyHybridMileage, region.HybridMileage, region, settings)
	if err != nil {
		return nil, err
	}

	fuel, err := engine.NewCar(engine.TypeFuel, fuelCarPrice, fuelMileage, settings.FuelPrice)
	if err != nil {
		return nil, err
	}
	hybrid, err := engine.NewCar(engine.TypeHybrid, hybridPrice, hybridMileage, settings.FuelPrice)
	if err != nil {
		return nil, err
	}

	return &Session{Region: region, Settings: settings, Fuel: fuel, Hybrid: hybrid}, nil
}

func settingsInput(overrides map[string]string) (config.SettingsInput, error) {
	var in config.SettingsInput
	var err error

	if in.FuelPrice, err = optionalFloat(overrides, keyFuelPrice); err != nil {
		return in, err
	}
	if in.AnnualDistance, err = optionalFloat(overrides, keyAnnualDistance); err != nil {
		return in, err
	}
	if in.PctFuelPriceHike, err = optionalFloat(overrides, keyHikePct); err != nil {
		return in, err
	}

	if v, ok := overrides[keyFuelUnit]; ok {
		u, parseErr := units.ParseFuelUnit(v)
		if parseErr != nil {
			return in, parseErr
		}
		in.FuelUnit = &u
	}
	if v, ok := overrides[keyMileageUnit]; ok {
		u, parseErr := units.ParseMileageUnit(v)
		if parseErr != nil {
			return in, parseErr
		}
		in.MileageUnit = &u
	}
	if v, ok := overrides[keyDistanceUnit]; ok {
		u, parseErr := units.ParseDistanceUnit(v)
		if parseErr != nil {
			return in, parseErr
		}
		in.DistanceUnit = &u
	}

	// A hike percentage implies simulating it unless explicitly disabled.
	in.SimFuelPriceHike = in.PctFuelPriceHike != nil
	if v, ok := overrides[keySimulateHike]; ok {
		sim, parseErr := strconv.ParseBool(strings.TrimSpace(v))
		if parseErr != nil {
			return in, fmt.Errorf("%w: --%s %q: %w", ErrInvalidInput, keySimulateHike, v, parseErr)
		}
		in.SimFuelPriceHike = sim
	}
	return in, nil
}

// carMileage returns the mileage override for key, or the region default
// converted into the session mileage unit.
func carMileage(
	overrides map[string]string,
	key string,
	regionValue float64,
	region config.RegionDefaults,
	s config.Settings,
) (units.Mileage, error) {
	v, err := optionalFloat(overrides, key)
	if err != nil {
		return units.Mileage{}, err
	}
	if v != nil {
		return units.NewMileage(*v, s.MileageUnit)
	}
	m, err := units.NewMileage(regionValue, region.MileageUnit)
	if err != nil {
		return units.Mileage{}, err
	}
	return m.In(s.MileageUnit)
}

func optionalFloat(overrides map[string]string, key string) (*float64, error) {
	raw, ok := overrides[key]
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: --%s %q is not a number", ErrInvalidInput, key, raw)
	}
	return &v, nil
}

func floatOr(overrides map[string]string, key string, fallback float64) (float64, error) {
	v, err := optionalFloat(overrides, key)
	if err != nil || v == nil {
		return fallback, err
	}
	return *v, nil
}

// sessionValues returns the current value of every session input as text,
// keyed like the overrides BuildSession accepts.
func sessionValues(s *Session) map[string]string {
	st := s.Settings
	return map[string]string{
		keyCurrency:       string(st.Currency),
		keyFuelPrice:      formatFloat(st.FuelPrice.Value),
		keyFuelUnit:       st.FuelUnit.String(),
		keyMileageUnit:    st.MileageUnit.String(),
		keyDistanceUnit:   st.DistanceUnit.String(),
		keyAnnualDistance: formatFloat(st.AnnualDistance.Value),
		keySimulateHike:   strconv.FormatBool(st.SimFuelPriceHike),
		keyHikePct:        formatFloat(hikeOrDefault(s)),
		keyFuelCarPrice:   formatFloat(s.Fuel.Price()),
		keyHybridPrice:    formatFloat(s.Hybrid.Price()),
		keyFuelCarMileage: formatFloat(s.Fuel.Mileage().Value),
		keyHybridMileage:  formatFloat(s.Hybrid.Mileage().Value),
	}
}

func hikeOrDefault(s *Session) float64 {
	if s.Settings.SimFuelPriceHike {
		return s.Settings.PctFuelPriceHike
	}
	return s.Region.PctFuelPriceHike
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
