package config

import (
	"fmt"
	"strings"

	"github.com/rshade/breakeven/internal/units"
)

// Bounds for the simulated yearly fuel price increase, in percent.
const (
	MinPctFuelPriceHike = 0.0
	MaxPctFuelPriceHike = 15.0
)

// Settings is the immutable description of one calculation session.
// Build it with NewSettings; derive variants with the With methods.
type Settings struct {
	Currency         Currency           `json:"currency"`
	FuelPrice        units.FuelPrice    `json:"fuel_price"`
	SimFuelPriceHike bool               `json:"sim_fuel_price_hike"`
	PctFuelPriceHike float64            `json:"pct_fuel_price_hike"`
	MileageUnit      units.MileageUnit  `json:"mileage_unit"`
	FuelUnit         units.FuelUnit     `json:"fuel_unit"`
	AnnualDistance   units.Distance     `json:"annual_distance"`
	DefHybridPrice   float64            `json:"def_hybrid_car_price"`
	DefFuelCarPrice  float64            `json:"def_fuel_car_price"`
	CarPriceStep     float64            `json:"car_price_step"`
	DistanceUnit     units.DistanceUnit `json:"distance_unit"`
}

// SettingsInput carries the values a user supplied for a session.
// Nil fields fall back to the region defaults.
type SettingsInput struct {
	FuelPrice        *float64
	FuelUnit         *units.FuelUnit
	MileageUnit      *units.MileageUnit
	DistanceUnit     *units.DistanceUnit
	AnnualDistance   *float64
	SimFuelPriceHike bool
	PctFuelPriceHike *float64
}

// NewSettings combines region defaults with user input and validates the result.
//
// When the distance unit is overridden but the annual distance is not, the
// region's annual distance is converted into the new unit.
func NewSettings(cur Currency, region RegionDefaults, in SettingsInput) (Settings, error) {
	s := Settings{
		Currency:         Currency(strings.ToUpper(string(cur))),
		SimFuelPriceHike: in.SimFuelPriceHike,
		PctFuelPriceHike: region.PctFuelPriceHike,
		MileageUnit:      region.MileageUnit,
		FuelUnit:         region.FuelUnit,
		DefHybridPrice:   region.HybridCarPrice,
		DefFuelCarPrice:  region.FuelCarPrice,
		CarPriceStep:     region.CarPriceStep,
		DistanceUnit:     region.DistanceUnit,
	}

	if in.FuelUnit != nil {
		s.FuelUnit = *in.FuelUnit
	}
	if in.MileageUnit != nil {
		s.MileageUnit = *in.MileageUnit
	}
	if in.DistanceUnit != nil {
		s.DistanceUnit = *in.DistanceUnit
	}
	if in.PctFuelPriceHike != nil {
		s.PctFuelPriceHike = *in.PctFuelPriceHike
	}
	if !s.SimFuelPriceHike {
		s.PctFuelPriceHike = 0
	}

	fuelPrice := region.FuelPrice
	if in.FuelPrice != nil {
		fuelPrice = *in.FuelPrice
	}
	s.FuelPrice = units.FuelPrice{Value: units.Round(fuelPrice), PerUnit: s.FuelUnit}

	annual := units.Distance{Value: region.AnnualDistance, Unit: region.DistanceUnit}
	if in.AnnualDistance != nil {
		annual = units.Distance{Value: *in.AnnualDistance, Unit: s.DistanceUnit}
	}
	if annual.Unit != s.DistanceUnit {
		converted, err := annual.In(s.DistanceUnit)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: annual distance: %w", ErrInvalidSettings, err)
		}
		annual = converted
	}
	s.AnnualDistance = annual

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every field is in range and every unit tag is known.
func (s Settings) Validate() error {
	if s.Currency == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidSettings)
	}
	if !s.FuelUnit.Valid() || !s.FuelPrice.PerUnit.Valid() {
		return fmt.Errorf("%w: %w: fuel unit %s", ErrInvalidSettings, units.ErrUnsupportedUnit, s.FuelUnit)
	}
	if !s.MileageUnit.Valid() {
		return fmt.Errorf("%w: %w: mileage unit %s", ErrInvalidSettings, units.ErrUnsupportedUnit, s.MileageUnit)
	}
	if !s.DistanceUnit.Valid() || !s.AnnualDistance.Unit.Valid() {
		return fmt.Errorf("%w: %w: distance unit %s", ErrInvalidSettings, units.ErrUnsupportedUnit, s.DistanceUnit)
	}
	if s.FuelPrice.Value <= 0 {
		return fmt.Errorf("%w: fuel price must be > 0, got %v", ErrInvalidSettings, s.FuelPrice.Value)
	}
	if s.PctFuelPriceHike < MinPctFuelPriceHike || s.PctFuelPriceHike > MaxPctFuelPriceHike {
		return fmt.Errorf("%w: fuel price hike must be within %v..%v%%, got %v",
			ErrInvalidSettings, MinPctFuelPriceHike, MaxPctFuelPriceHike, s.PctFuelPriceHike)
	}
	if s.AnnualDistance.Value <= 0 {
		return fmt.Errorf("%w: annual distance must be > 0, got %v", ErrInvalidSettings, s.AnnualDistance.Value)
	}
	return nil
}

// WithFuelPriceHike returns a copy of s simulating a yearly hike of pct percent.
func (s Settings) WithFuelPriceHike(pct float64) (Settings, error) {
	s.SimFuelPriceHike = true
	s.PctFuelPriceHike = pct
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// AnnualDistanceKm returns the annual distance in kilometres.
func (s Settings) AnnualDistanceKm() (float64, error) {
	km, err := s.AnnualDistance.In(units.Kilometers)
	if err != nil {
		return 0, err
	}
	return km.Value, nil
}

// FuelPricePerLiter returns the session fuel price normalized to litres.
func (s Settings) FuelPricePerLiter() (units.FuelPrice, error) {
	return s.FuelPrice.In(units.Liter)
}
