package units

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTripTolerance bounds the drift a value can pick up over two rounded
// hops, the worst case being a per-litre price multiplied back by 4.546.
const roundTripTolerance = 0.03

func TestRound(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already two places", 2.05, 2.05},
		{"rounds up", 0.819, 0.82},
		{"stored below the half", 2.675, 2.67},
		{"negative stored below the half", -1.005, -1},
		{"exact tie goes to even", 0.125, 0.12},
		{"exact tie goes to even upwards", 0.375, 0.38},
		{"negative exact tie", -0.125, -0.12},
		{"integer", 100, 100},
		{"zero", 0, 0},
		{"reciprocal of six", 100.0 / 6.0, 16.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round(tt.in))
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 8.3, RoundTo(8.3333, 1))
	// 0.45 is stored slightly above the half.
	assert.Equal(t, 0.5, RoundTo(0.45, 1))
	assert.Equal(t, 2.0, RoundTo(2.5, 0))
	assert.Equal(t, 4.0, RoundTo(3.5, 0))
	assert.Equal(t, 1e20, RoundTo(1e20, 2))
	assert.Zero(t, RoundTo(5e-324, 2))
}

func TestConvertDistance(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		from    DistanceUnit
		to      DistanceUnit
		want    float64
		wantErr error
	}{
		{name: "km to mi", value: 100, from: Kilometers, to: Miles, want: 62.14},
		{name: "mi to km", value: 15000, from: Miles, to: Kilometers, want: 24140.1},
		{name: "identity keeps precision", value: 1.23456, from: Miles, to: Miles, want: 1.23456},
		{name: "unknown source", value: 1, from: DistanceUnit(7), to: Miles, wantErr: ErrUnsupportedUnit},
		{name: "unknown target", value: 1, from: Kilometers, to: DistanceUnit(-1), wantErr: ErrUnsupportedUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertDistance(tt.value, tt.from, tt.to)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertFuelQuantity(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		from  FuelUnit
		to    FuelUnit
		want  float64
	}{
		{"US gal to L", 10, USGallon, Liter, 37.85},
		{"UK gal to L", 10, UKGallon, Liter, 45.46},
		{"L to US gal", 37.85, Liter, USGallon, 10},
		{"L to UK gal", 100, Liter, UKGallon, 22},
		{"US gal to UK gal via litres", 10, USGallon, UKGallon, 8.33},
		{"identity", 3.14159, UKGallon, UKGallon, 3.14159},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertFuelQuantity(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertFuelPrice(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		from  FuelUnit
		to    FuelUnit
		want  float64
	}{
		{"per US gal to per L", 3.1, USGallon, Liter, 0.82},
		{"per UK gal to per L", 7.5, UKGallon, Liter, 1.65},
		{"per L to per US gal", 0.82, Liter, USGallon, 3.10},
		{"per L to per UK gal", 2, Liter, UKGallon, 9.09},
		{"identity", 2.005, Liter, Liter, 2.005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertFuelPrice(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertFuelPrice_MovesOppositeToVolume(t *testing.T) {
	volume, err := ConvertFuelQuantity(1, USGallon, Liter)
	require.NoError(t, err)
	price, err := ConvertFuelPrice(1, USGallon, Liter)
	require.NoError(t, err)

	assert.Greater(t, volume, 1.0)
	assert.Less(t, price, 1.0)
}

func TestConvertMileage(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		from    MileageUnit
		to      MileageUnit
		want    float64
		wantErr error
	}{
		{name: "L/100km to km/L", value: 4, from: L100KM, to: KMPL, want: 25},
		{name: "km/L to L/100km", value: 25, from: KMPL, to: L100KM, want: 4},
		{name: "six L/100km", value: 6, from: L100KM, to: KMPL, want: 16.67},
		{name: "MPG US to km/L", value: 30, from: MPGUS, to: KMPL, want: 12.75},
		{name: "MPG UK to km/L", value: 50, from: MPGUK, to: KMPL, want: 17.7},
		{name: "km/L to MPG US", value: 12.75, from: KMPL, to: MPGUS, want: 29.99},
		{name: "km/L to MPG UK", value: 17.7, from: KMPL, to: MPGUK, want: 50},
		{name: "MPG US to L/100km through pivot", value: 30, from: MPGUS, to: L100KM, want: 7.84},
		{name: "identity", value: 5.555, from: MPGUK, to: MPGUK, want: 5.555},
		{name: "zero L/100km fails", value: 0, from: L100KM, to: KMPL, wantErr: ErrZeroDivisor},
		{name: "zero km/L to L/100km fails", value: 0, from: KMPL, to: L100KM, wantErr: ErrZeroDivisor},
		{name: "zero L/100km to MPG fails", value: 0, from: L100KM, to: MPGUS, wantErr: ErrZeroDivisor},
		{name: "unknown unit", value: 1, from: MileageUnit(42), to: KMPL, wantErr: ErrUnsupportedUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertMileage(tt.value, tt.from, tt.to)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertMileage_ZeroIdentityDoesNotFail(t *testing.T) {
	got, err := ConvertMileage(0, L100KM, L100KM)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestRoundTrip(t *testing.T) {
	t.Run("distance", func(t *testing.T) {
		for _, a := range DistanceUnits() {
			for _, b := range DistanceUnits() {
				for _, x := range []float64{1, 15000, 62.5} {
					there, err := ConvertDistance(x, a, b)
					require.NoError(t, err)
					back, err := ConvertDistance(there, b, a)
					require.NoError(t, err)
					assert.InDelta(t, x, back, roundTripTolerance, "%v %s<->%s", x, a, b)
				}
			}
		}
	})

	t.Run("fuel quantity", func(t *testing.T) {
		for _, a := range FuelUnits() {
			for _, b := range FuelUnits() {
				for _, x := range []float64{1, 40, 2500} {
					there, err := ConvertFuelQuantity(x, a, b)
					require.NoError(t, err)
					back, err := ConvertFuelQuantity(there, b, a)
					require.NoError(t, err)
					assert.InDelta(t, x, back, roundTripTolerance, "%v %s<->%s", x, a, b)
				}
			}
		}
	})

	t.Run("fuel price", func(t *testing.T) {
		for _, a := range FuelUnits() {
			for _, b := range FuelUnits() {
				for _, x := range []float64{2, 3.1, 1.7} {
					there, err := ConvertFuelPrice(x, a, b)
					require.NoError(t, err)
					back, err := ConvertFuelPrice(there, b, a)
					require.NoError(t, err)
					assert.InDelta(t, x, back, roundTripTolerance, "%v %s<->%s", x, a, b)
				}
			}
		}
	})

	t.Run("mileage", func(t *testing.T) {
		for _, a := range MileageUnits() {
			for _, b := range MileageUnits() {
				for _, x := range []float64{4, 6, 25} {
					there, err := ConvertMileage(x, a, b)
					require.NoError(t, err)
					back, err := ConvertMileage(there, b, a)
					require.NoError(t, err)
					assert.InDelta(t, x, back, roundTripTolerance, "%v %s<->%s", x, a, b)
				}
			}
		}
	})
}

func TestPivotConsistency(t *testing.T) {
	direct, err := ConvertFuelQuantity(10, USGallon, UKGallon)
	require.NoError(t, err)

	liters, err := ConvertFuelQuantity(10, USGallon, Liter)
	require.NoError(t, err)
	viaPivot, err := ConvertFuelQuantity(liters, Liter, UKGallon)
	require.NoError(t, err)

	assert.Equal(t, viaPivot, direct)

	mpg, err := ConvertMileage(6, L100KM, MPGUK)
	require.NoError(t, err)
	kmpl, err := ConvertMileage(6, L100KM, KMPL)
	require.NoError(t, err)
	mpgViaPivot, err := ConvertMileage(kmpl, KMPL, MPGUK)
	require.NoError(t, err)

	assert.Equal(t, mpgViaPivot, mpg)
}

func TestValueTypes(t *testing.T) {
	t.Run("distance In carries unit", func(t *testing.T) {
		d, err := NewDistance(100, Kilometers)
		require.NoError(t, err)
		mi, err := d.In(Miles)
		require.NoError(t, err)
		assert.Equal(t, Distance{Value: 62.14, Unit: Miles}, mi)
	})

	t.Run("fuel price In", func(t *testing.T) {
		p, err := NewFuelPrice(3.1, USGallon)
		require.NoError(t, err)
		perLiter, err := p.In(Liter)
		require.NoError(t, err)
		assert.Equal(t, FuelPrice{Value: 0.82, PerUnit: Liter}, perLiter)
	})

	t.Run("mileage KMPL", func(t *testing.T) {
		m, err := NewMileage(4, L100KM)
		require.NoError(t, err)
		kmpl, err := m.KMPL()
		require.NoError(t, err)
		assert.Equal(t, 25.0, kmpl)
	})

	t.Run("negative values rejected", func(t *testing.T) {
		_, err := NewDistance(-1, Kilometers)
		require.ErrorIs(t, err, ErrNegativeValue)
		_, err = NewFuelQuantity(-1, Liter)
		require.ErrorIs(t, err, ErrNegativeValue)
		_, err = NewFuelPrice(-0.01, Liter)
		require.ErrorIs(t, err, ErrNegativeValue)
		_, err = NewMileage(-3, KMPL)
		require.ErrorIs(t, err, ErrNegativeValue)
	})

	t.Run("unknown unit rejected", func(t *testing.T) {
		_, err := NewFuelQuantity(1, FuelUnit(9))
		require.ErrorIs(t, err, ErrUnsupportedUnit)
	})

	t.Run("string forms", func(t *testing.T) {
		assert.Equal(t, "15000.00 km", Distance{Value: 15000, Unit: Kilometers}.String())
		assert.Equal(t, "2.00 / Liter", FuelPrice{Value: 2, PerUnit: Liter}.String())
		assert.Equal(t, "4.00 L/100km", Mileage{Value: 4, Unit: L100KM}.String())
	})
}

func TestParseUnits(t *testing.T) {
	t.Run("labels parse back", func(t *testing.T) {
		for _, u := range DistanceUnits() {
			got, err := ParseDistanceUnit(u.String())
			require.NoError(t, err)
			assert.Equal(t, u, got)
		}
		for _, u := range FuelUnits() {
			got, err := ParseFuelUnit(u.String())
			require.NoError(t, err)
			assert.Equal(t, u, got)
		}
		for _, u := range MileageUnits() {
			got, err := ParseMileageUnit(u.String())
			require.NoError(t, err)
			assert.Equal(t, u, got)
		}
	})

	t.Run("aliases", func(t *testing.T) {
		m, err := ParseMileageUnit("  MPG ")
		require.NoError(t, err)
		assert.Equal(t, MPGUS, m)

		f, err := ParseFuelUnit("imperial   GAL")
		require.NoError(t, err)
		assert.Equal(t, UKGallon, f)

		d, err := ParseDistanceUnit("Kilometres")
		require.NoError(t, err)
		assert.Equal(t, Kilometers, d)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseMileageUnit("furlongs/hogshead")
		require.ErrorIs(t, err, ErrUnsupportedUnit)
		_, err = ParseFuelUnit("barrel")
		require.ErrorIs(t, err, ErrUnsupportedUnit)
		_, err = ParseDistanceUnit("parsec")
		require.ErrorIs(t, err, ErrUnsupportedUnit)
	})
}

func TestUnitText_JSON(t *testing.T) {
	in := Mileage{Value: 4, Unit: L100KM}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":4,"unit":"L/100km"}`, string(data))

	var out Mileage
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	_, err = json.Marshal(Distance{Value: 1, Unit: DistanceUnit(5)})
	require.Error(t, err)
}

func BenchmarkConvertMileage(b *testing.B) {
	for b.Loop() {
		_, _ = ConvertMileage(6, L100KM, MPGUK)
	}
}
