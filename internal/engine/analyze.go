package engine

import (
	"context"
	"errors"
	"math"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/logging"
	"github.com/rshade/breakeven/internal/units"
)

// AnalyzeOptions selects optional parts of a Report.
type AnalyzeOptions struct {
	// Trace adds the year-by-year cost trace.
	Trace bool
}

// Affordable is the fuel the price premium buys and how far it drives the fuel car.
type Affordable struct {
	Distance units.Distance     `json:"distance"`
	Fuel     units.FuelQuantity `json:"fuel"`
}

// StaticBreakeven is the break-even point at a constant fuel price.
type StaticBreakeven struct {
	Distance units.Distance `json:"distance"`
	Years    float64        `json:"years"`
}

// Report collects every result for one session. Distances are in the session
// distance unit and fuel prices per the session fuel unit.
type Report struct {
	Settings     config.Settings `json:"settings"`
	FuelCar      Car             `json:"fuel_car"`
	HybridCar    Car             `json:"hybrid_car"`
	PricePremium float64         `json:"price_premium"`

	// AlreadyAhead is set when the hybrid costs no more to buy or has no better
	// mileage. No other results are filled in.
	AlreadyAhead bool `json:"already_ahead"`
	// NoPayback is set when the hybrid uses less fuel but saves less than a
	// cent per km, so the premium is never recovered.
	NoPayback bool `json:"no_payback"`

	Affordable *Affordable         `json:"affordable,omitempty"`
	Static     *StaticBreakeven    `json:"static,omitempty"`
	Inflation  *InflationBreakeven `json:"inflation,omitempty"`
	Trace      []YearCost          `json:"trace,omitempty"`
}

// Analyze runs every engine operation for one session.
func Analyze(ctx context.Context, s config.Settings, fuel, hybrid Car, opts AnalyzeOptions) (*Report, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", "Analyze").
		Logger()

	report := &Report{
		Settings:     s,
		FuelCar:      fuel,
		HybridCar:    hybrid,
		PricePremium: PricePremium(fuel, hybrid),
	}

	if report.PricePremium <= 0 || hybrid.KMPL() <= fuel.KMPL() {
		report.AlreadyAhead = true
		logger.Debug().Ctx(ctx).
			Float64("price_premium", report.PricePremium).
			Float64("hybrid_kmpl", hybrid.KMPL()).
			Float64("fuel_kmpl", fuel.KMPL()).
			Msg("hybrid already ahead")
		return report, nil
	}

	distance, fuelQty, err := DistanceAffordable(fuel, hybrid, s)
	if err != nil {
		return nil, err
	}
	if distance, err = distance.In(s.DistanceUnit); err != nil {
		return nil, err
	}
	report.Affordable = &Affordable{Distance: distance, Fuel: fuelQty}

	static, err := BreakevenDistance(fuel, hybrid)
	if errors.Is(err, ErrSavingsBelowResolution) {
		report.NoPayback = true
		logger.Debug().Ctx(ctx).
			Float64("cost_per_km", hybrid.CostPerKm()).
			Msg("saving per km below one cent")
		return report, nil
	}
	if err != nil {
		return nil, err
	}
	annualKm, err := s.AnnualDistanceKm()
	if err != nil {
		return nil, err
	}
	staticYears := units.RoundTo(static.Value/annualKm, yearsPrecision)
	// The cars cross at the first whole km past the static distance.
	traceYears := YearOf(math.Floor(static.Value)+1, annualKm)
	if static, err = static.In(s.DistanceUnit); err != nil {
		return nil, err
	}
	report.Static = &StaticBreakeven{Distance: static, Years: staticYears}

	if s.SimFuelPriceHike {
		inflation, infErr := BreakevenWithInflation(fuel, hybrid, s)
		if infErr != nil {
			if errors.Is(infErr, ErrInsufficientHorizon) {
				logger.Warn().Ctx(ctx).Err(infErr).Msg("inflation break-even not found")
			}
			return nil, infErr
		}
		if inflation, err = inSessionUnits(inflation, s); err != nil {
			return nil, err
		}
		report.Inflation = &inflation
		traceYears = inflation.Year
	}

	if opts.Trace {
		if report.Trace, err = YearlyTrace(fuel, hybrid, s, traceYears); err != nil {
			return nil, err
		}
	}

	logger.Debug().Ctx(ctx).
		Float64("price_premium", report.PricePremium).
		Float64("static_distance", report.Static.Distance.Value).
		Float64("static_years", report.Static.Years).
		Bool("inflation", report.Inflation != nil).
		Int("trace_years", len(report.Trace)).
		Msg("analysis complete")

	return report, nil
}

func inSessionUnits(b InflationBreakeven, s config.Settings) (InflationBreakeven, error) {
	distance, err := b.Distance.In(s.DistanceUnit)
	if err != nil {
		return InflationBreakeven{}, err
	}
	price, err := b.FuelPrice.In(s.FuelPrice.PerUnit)
	if err != nil {
		return InflationBreakeven{}, err
	}
	b.Distance = distance
	b.FuelPrice = price
	return b, nil
}
