package engine

import (
	"fmt"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/units"
)

// YearCost is the position of both cars at the end of one year.
type YearCost struct {
	Year        int     `json:"year"`
	Distance    float64 `json:"distance_km"`
	FuelPrice   float64 `json:"fuel_price_per_liter"`
	FuelCarCost float64 `json:"fuel_car_running_cost"`
	HybridCost  float64 `json:"hybrid_car_running_cost"`
	Savings     float64 `json:"savings"`
	// Net is Savings minus the price premium; it turns positive after break-even.
	Net float64 `json:"net"`
}

// YearlyTrace returns the year-end position for years 1..years using the
// same running cost formula as the inflation scan. Amounts are rounded.
func YearlyTrace(fuel, hybrid Car, s config.Settings, years int) ([]YearCost, error) {
	if years <= 0 {
		return nil, nil
	}

	annualKm, err := s.AnnualDistanceKm()
	if err != nil {
		return nil, err
	}
	if annualKm <= 0 {
		return nil, fmt.Errorf("%w: annual distance %v km", config.ErrInvalidSettings, annualKm)
	}
	perLiter, err := s.FuelPricePerLiter()
	if err != nil {
		return nil, err
	}

	pct := 0.0
	if s.SimFuelPriceHike {
		pct = s.PctFuelPriceHike
	}

	premium := PricePremium(fuel, hybrid)
	prices := YearlyFuelPrices(perLiter.Value, pct, years)
	trace := make([]YearCost, 0, years)
	for i, price := range prices {
		year := i + 1
		distance := units.Round(float64(year) * annualKm)
		fuelCost := units.Round(distance / fuel.KMPL() * price)
		hybridCost := units.Round(distance / hybrid.KMPL() * price)
		savings := units.Round(fuelCost - hybridCost)

		trace = append(trace, YearCost{
			Year:        year,
			Distance:    distance,
			FuelPrice:   price,
			FuelCarCost: fuelCost,
			HybridCost:  hybridCost,
			Savings:     savings,
			Net:         units.Round(savings - premium),
		})
	}
	return trace, nil
}
