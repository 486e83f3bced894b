package engine

import (
	"encoding/json"
	"fmt"

	"github.com/rshade/breakeven/internal/units"
)

// Car type labels.
const (
	TypeHybrid = "Hybrid"
	TypeFuel   = "Fuel"
)

// Car is an immutable vehicle description. Its running cost per km is
// derived once at construction from the mileage and the fuel price.
type Car struct {
	carType   string
	price     float64
	mileage   units.Mileage
	kmpl      float64
	costPerKm float64
}

// NewCar builds a Car and derives its cost per km from fuelPrice.
func NewCar(carType string, price float64, mileage units.Mileage, fuelPrice units.FuelPrice) (Car, error) {
	if price < 0 {
		return Car{}, fmt.Errorf("%s car: %w: %v", carType, ErrNegativePrice, price)
	}

	kmpl, err := normalizedKMPL(mileage)
	if err != nil {
		return Car{}, fmt.Errorf("%s car: %w", carType, err)
	}
	cost, err := costPerKm(kmpl, fuelPrice)
	if err != nil {
		return Car{}, fmt.Errorf("%s car: %w", carType, err)
	}

	return Car{
		carType:   carType,
		price:     price,
		mileage:   mileage,
		kmpl:      kmpl,
		costPerKm: cost,
	}, nil
}

// Type returns the car's label.
func (c Car) Type() string { return c.carType }

// Price returns the purchase price in session currency.
func (c Car) Price() float64 { return c.price }

// Mileage returns the mileage as entered.
func (c Car) Mileage() units.Mileage { return c.mileage }

// KMPL returns the mileage normalized to km/L.
func (c Car) KMPL() float64 { return c.kmpl }

// CostPerKm returns the running cost per km in session currency.
func (c Car) CostPerKm() float64 { return c.costPerKm }

// MarshalJSON exposes the derived fields alongside the inputs.
func (c Car) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string        `json:"type"`
		Price     float64       `json:"price"`
		Mileage   units.Mileage `json:"mileage"`
		KMPL      float64       `json:"kmpl"`
		CostPerKm float64       `json:"cost_per_km"`
	}{c.carType, c.price, c.mileage, c.kmpl, c.costPerKm})
}

// CostPerDistance returns the running cost per km of a car with the given
// mileage at the given fuel price: price per litre / km per litre, rounded.
func CostPerDistance(mileage units.Mileage, fuelPrice units.FuelPrice) (float64, error) {
	kmpl, err := normalizedKMPL(mileage)
	if err != nil {
		return 0, err
	}
	return costPerKm(kmpl, fuelPrice)
}

func normalizedKMPL(mileage units.Mileage) (float64, error) {
	kmpl, err := mileage.KMPL()
	if err != nil {
		return 0, err
	}
	if kmpl == 0 {
		return 0, fmt.Errorf("%w: %s", ErrZeroMileage, mileage)
	}
	return kmpl, nil
}

func costPerKm(kmpl float64, fuelPrice units.FuelPrice) (float64, error) {
	perLiter, err := fuelPrice.In(units.Liter)
	if err != nil {
		return 0, err
	}
	return units.Round(perLiter.Value / kmpl), nil
}
