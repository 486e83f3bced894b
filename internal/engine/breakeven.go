package engine

import (
	"fmt"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/units"
)

// PricePremium returns the hybrid's purchase price minus the fuel car's.
func PricePremium(fuel, hybrid Car) float64 {
	return hybrid.Price() - fuel.Price()
}

// DistanceAffordable returns how far the fuel car could drive on the price
// premium if it were spent on fuel at the session price, together with the
// fuel that premium buys in the session fuel unit.
func DistanceAffordable(fuel, hybrid Car, s config.Settings) (units.Distance, units.FuelQuantity, error) {
	premium := PricePremium(fuel, hybrid)
	if premium <= 0 {
		return units.Distance{}, units.FuelQuantity{}, fmt.Errorf("%w: premium %v", ErrNoPricePremium, premium)
	}
	if s.FuelPrice.Value <= 0 {
		return units.Distance{}, units.FuelQuantity{}, fmt.Errorf("fuel price %v: %w", s.FuelPrice.Value, units.ErrZeroDivisor)
	}

	quantity := units.FuelQuantity{
		Value: units.Round(premium / s.FuelPrice.Value),
		Unit:  s.FuelPrice.PerUnit,
	}
	liters, err := quantity.In(units.Liter)
	if err != nil {
		return units.Distance{}, units.FuelQuantity{}, err
	}

	distance := units.Distance{
		Value: units.Round(fuel.KMPL() * liters.Value),
		Unit:  units.Kilometers,
	}
	return distance, quantity, nil
}

// BreakevenDistance returns the distance at which the hybrid's lower running
// cost pays back its price premium, assuming a constant fuel price:
//
//	premium / (fuel cost per km - hybrid cost per km)
//
// It fails with ErrNonPositiveSavings when the hybrid's mileage is not better
// than the fuel car's, with ErrSavingsBelowResolution when it is better but
// both costs per km round to the same cent, and with ErrNoPricePremium when
// there is no premium.
func BreakevenDistance(fuel, hybrid Car) (units.Distance, error) {
	premium := PricePremium(fuel, hybrid)
	if premium <= 0 {
		return units.Distance{}, fmt.Errorf("%w: premium %v", ErrNoPricePremium, premium)
	}
	if hybrid.KMPL() <= fuel.KMPL() {
		return units.Distance{}, fmt.Errorf("%w: hybrid %.2f km/L, fuel %.2f km/L",
			ErrNonPositiveSavings, hybrid.KMPL(), fuel.KMPL())
	}

	savingsPerKm := fuel.CostPerKm() - hybrid.CostPerKm()
	if savingsPerKm <= 0 {
		return units.Distance{}, fmt.Errorf("%w: %.2f per km for both cars",
			ErrSavingsBelowResolution, hybrid.CostPerKm())
	}

	return units.Distance{Value: units.Round(premium / savingsPerKm), Unit: units.Kilometers}, nil
}
