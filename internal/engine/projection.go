package engine

import (
	"fmt"
	"iter"
	"math"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/units"
)

// MaxHorizonExtensions is how many times the inflation scan doubles its
// distance limit before giving up with ErrInsufficientHorizon.
const MaxHorizonExtensions = 4

const (
	pctDivisor      = 100.0
	yearsPrecision  = 1
	minScanDistance = 1
)

// ProjectionRow is the simulated position after driving Distance km.
// Costs apply Year's fuel price to the whole distance driven so far.
type ProjectionRow struct {
	Distance       int     `json:"distance_km"`
	Year           int     `json:"year"`
	FuelPrice      float64 `json:"fuel_price_per_liter"`
	FuelCarCost    float64 `json:"fuel_car_running_cost"`
	HybridCost     float64 `json:"hybrid_car_running_cost"`
	CostDifference float64 `json:"cost_difference"`
}

// InflationBreakeven is the crossover point under a compounding fuel price.
type InflationBreakeven struct {
	// Distance driven when cumulative savings first exceed the premium.
	Distance units.Distance `json:"distance"`
	// Years elapsed, interpolated linearly within the crossover year.
	Years float64 `json:"years"`
	// Year is the 1-based year number the crossover falls in.
	Year int `json:"year"`
	// FuelPrice is the per-litre fuel price during Year.
	FuelPrice units.FuelPrice `json:"fuel_price"`
	// Horizon is the distance limit in km the scan had reached.
	Horizon int `json:"horizon_km"`
}

// YearlyFuelPrices returns the fuel price for years 1..years. Year 1 is start
// rounded; each later year compounds the previous one by pct percent and is
// rounded again.
func YearlyFuelPrices(start, pct float64, years int) []float64 {
	if years <= 0 {
		return nil
	}
	prices := make([]float64, 0, years)
	schedule := newPriceSchedule(start, pct)
	for year := 1; year <= years; year++ {
		prices = append(prices, schedule.at(year))
	}
	return prices
}

// priceSchedule yields compounding yearly prices on demand. Years must be
// requested in non-decreasing order.
type priceSchedule struct {
	growth float64
	year   int
	price  float64
}

func newPriceSchedule(start, pct float64) *priceSchedule {
	return &priceSchedule{growth: 1 + pct/pctDivisor, year: 1, price: units.Round(start)}
}

func (p *priceSchedule) at(year int) float64 {
	for p.year < year {
		p.price = units.Round(p.price * p.growth)
		p.year++
	}
	return p.price
}

// YearOf returns the 1-based year in which distance falls:
// ceil(distance / annualKm).
func YearOf(distance, annualKm float64) int {
	return int(math.Ceil(distance / annualKm))
}

// FractionalYears returns year-1 plus the fraction of the crossover year
// driven, rounded to one decimal: year-1 + (distance mod annual) / annual.
func FractionalYears(distance float64, year int, annualKm float64) float64 {
	return units.RoundTo(float64(year-1)+math.Mod(distance, annualKm)/annualKm, yearsPrecision)
}

// Projection returns an unbounded lazy sequence of rows for distances 1, 2, 3...
// km. Callers stop it by breaking out of the range loop.
func Projection(fuel, hybrid Car, pricePerLiter, pct, annualKm float64) iter.Seq[ProjectionRow] {
	return func(yield func(ProjectionRow) bool) {
		schedule := newPriceSchedule(pricePerLiter, pct)
		fuelPerKm := 1 / fuel.KMPL()
		hybridPerKm := 1 / hybrid.KMPL()

		for d := minScanDistance; ; d++ {
			km := float64(d)
			year := YearOf(km, annualKm)
			price := schedule.at(year)
			fuelCost := km * fuelPerKm * price
			hybridCost := km * hybridPerKm * price

			row := ProjectionRow{
				Distance:       d,
				Year:           year,
				FuelPrice:      price,
				FuelCarCost:    fuelCost,
				HybridCost:     hybridCost,
				CostDifference: fuelCost - hybridCost,
			}
			if !yield(row) {
				return
			}
		}
	}
}

// BreakevenWithInflation finds the first km at which the fuel car's running
// cost exceeds the hybrid's by strictly more than the price premium, with the
// fuel price compounding yearly by s.PctFuelPriceHike.
//
// The scan is bounded by the constant-price break-even distance. If that bound
// is reached without a crossover it is doubled, up to MaxHorizonExtensions
// times, before ErrInsufficientHorizon is returned.
func BreakevenWithInflation(fuel, hybrid Car, s config.Settings) (InflationBreakeven, error) {
	static, err := BreakevenDistance(fuel, hybrid)
	if err != nil {
		return InflationBreakeven{}, err
	}

	annualKm, err := s.AnnualDistanceKm()
	if err != nil {
		return InflationBreakeven{}, err
	}
	if annualKm <= 0 {
		return InflationBreakeven{}, fmt.Errorf("%w: annual distance %v km", config.ErrInvalidSettings, annualKm)
	}
	perLiter, err := s.FuelPricePerLiter()
	if err != nil {
		return InflationBreakeven{}, err
	}

	pct := 0.0
	if s.SimFuelPriceHike {
		pct = s.PctFuelPriceHike
	}

	premium := PricePremium(fuel, hybrid)
	horizon := max(int(math.Ceil(static.Value)), minScanDistance)
	extensions := 0

	for row := range Projection(fuel, hybrid, perLiter.Value, pct, annualKm) {
		if row.Distance > horizon {
			if extensions == MaxHorizonExtensions {
				return InflationBreakeven{}, fmt.Errorf("%w: scanned %d km (%d years) at %.1f%% hike",
					ErrInsufficientHorizon, horizon, YearOf(float64(horizon), annualKm), pct)
			}
			horizon *= 2
			extensions++
		}

		if row.CostDifference > premium {
			return InflationBreakeven{
				Distance:  units.Distance{Value: float64(row.Distance), Unit: units.Kilometers},
				Years:     FractionalYears(float64(row.Distance), row.Year, annualKm),
				Year:      row.Year,
				FuelPrice: units.FuelPrice{Value: row.FuelPrice, PerUnit: units.Liter},
				Horizon:   horizon,
			}, nil
		}
	}

	// Projection is unbounded; the loop only exits through a return.
	return InflationBreakeven{}, ErrInsufficientHorizon
}
