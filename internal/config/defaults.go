package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/breakeven/internal/units"
)

// Currency is an ISO 4217 code identifying a currency region.
type Currency string

// Currencies with built-in region defaults.
const (
	AUD Currency = "AUD"
	INR Currency = "INR"
	USD Currency = "USD"
	GBP Currency = "GBP"
)

// DefaultCurrency is used when neither config nor flags name a currency.
const DefaultCurrency = AUD

// DefaultPctFuelPriceHike is the yearly fuel price increase offered by default.
const DefaultPctFuelPriceHike = 2.5

// RegionDefaults holds the initial session values for one currency region.
// Prices are in the region currency, mileages in MileageUnit and the annual
// distance in DistanceUnit.
type RegionDefaults struct {
	FuelPrice        float64            `yaml:"fuel_price"          json:"fuel_price"`
	FuelUnit         units.FuelUnit     `yaml:"fuel_unit"           json:"fuel_unit"`
	MileageUnit      units.MileageUnit  `yaml:"mileage_unit"        json:"mileage_unit"`
	DistanceUnit     units.DistanceUnit `yaml:"distance_unit"       json:"distance_unit"`
	AnnualDistance   float64            `yaml:"annual_distance"     json:"annual_distance"`
	PctFuelPriceHike float64            `yaml:"pct_fuel_price_hike" json:"pct_fuel_price_hike"`
	HybridCarPrice   float64            `yaml:"hybrid_car_price"    json:"hybrid_car_price"`
	FuelCarPrice     float64            `yaml:"fuel_car_price"      json:"fuel_car_price"`
	CarPriceStep     float64            `yaml:"car_price_step"      json:"car_price_step"`
	HybridMileage    float64            `yaml:"hybrid_mileage"      json:"hybrid_mileage"`
	FuelCarMileage   float64            `yaml:"fuel_car_mileage"    json:"fuel_car_mileage"`
}

// builtinRegions returns a fresh copy of the built-in region table.
func builtinRegions() RegionTable {
	return RegionTable{
		AUD: {
			FuelPrice:        2.0,
			FuelUnit:         units.Liter,
			MileageUnit:      units.L100KM,
			DistanceUnit:     units.Kilometers,
			AnnualDistance:   15_000,
			PctFuelPriceHike: DefaultPctFuelPriceHike,
			HybridCarPrice:   45_000,
			FuelCarPrice:     40_000,
			CarPriceStep:     1_000,
			HybridMileage:    4,
			FuelCarMileage:   6,
		},
		INR: {
			FuelPrice:        101.0,
			FuelUnit:         units.Liter,
			MileageUnit:      units.KMPL,
			DistanceUnit:     units.Kilometers,
			AnnualDistance:   15_000,
			PctFuelPriceHike: DefaultPctFuelPriceHike,
			HybridCarPrice:   12_50_000,
			FuelCarPrice:     10_00_000,
			CarPriceStep:     50_000,
			HybridMileage:    22,
			FuelCarMileage:   15,
		},
		USD: {
			FuelPrice:        3.1,
			FuelUnit:         units.USGallon,
			MileageUnit:      units.MPGUS,
			DistanceUnit:     units.Miles,
			AnnualDistance:   15_000,
			PctFuelPriceHike: DefaultPctFuelPriceHike,
			HybridCarPrice:   35_000,
			FuelCarPrice:     30_000,
			CarPriceStep:     1_000,
			HybridMileage:    50,
			FuelCarMileage:   30,
		},
		GBP: {
			FuelPrice:        1.7,
			FuelUnit:         units.Liter,
			MileageUnit:      units.MPGUS,
			DistanceUnit:     units.Miles,
			AnnualDistance:   15_000,
			PctFuelPriceHike: DefaultPctFuelPriceHike,
			HybridCarPrice:   40_000,
			FuelCarPrice:     35_000,
			CarPriceStep:     1_000,
			HybridMileage:    55,
			FuelCarMileage:   35,
		},
	}
}

// RegionTable maps a currency to its region defaults.
type RegionTable map[Currency]RegionDefaults

// UnmarshalYAML decodes region overrides. Each entry is decoded on top of the
// built-in defaults for that currency, so a config file only needs to name the
// fields it changes. Unknown currencies start from zero values.
func (t *RegionTable) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]yaml.Node
	if err := node.Decode(&raw); err != nil {
		return err
	}

	builtin := builtinRegions()
	out := make(RegionTable, len(raw))
	for key, entry := range raw {
		cur := Currency(strings.ToUpper(strings.TrimSpace(key)))
		base := builtin[cur]
		if err := entry.Decode(&base); err != nil {
			return fmt.Errorf("region %s: %w", cur, err)
		}
		out[cur] = base
	}
	*t = out
	return nil
}

// Lookup returns the defaults for cur. Matching is case-insensitive.
func (t RegionTable) Lookup(cur Currency) (RegionDefaults, error) {
	region, ok := t[Currency(strings.ToUpper(string(cur)))]
	if !ok {
		return RegionDefaults{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownCurrency, cur, strings.Join(t.names(), ", "))
	}
	return region, nil
}

// Currencies returns the table's currencies in sorted order.
func (t RegionTable) Currencies() []Currency {
	return slices.Sorted(maps.Keys(t))
}

func (t RegionTable) names() []string {
	out := make([]string, 0, len(t))
	for _, c := range t.Currencies() {
		out = append(out, string(c))
	}
	return out
}

// MergeRegions returns the built-in table with overrides applied on top.
// Entries in overrides replace the built-in entry for that currency.
func MergeRegions(overrides RegionTable) RegionTable {
	merged := builtinRegions()
	for cur, region := range overrides {
		merged[cur] = region
	}
	return merged
}
