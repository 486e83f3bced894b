package units

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// float64MantissaBits is the width of a float64 significand including the
// implicit leading bit.
const float64MantissaBits = 53

// Round rounds v to DecimalPlaces, half to even.
//
// Rounding looks at the exact binary value of v, so 2.675 (stored as
// 2.67499999...) rounds to 2.67 and only exact ties such as 0.125 go to the
// even neighbour.
func Round(v float64) float64 {
	return RoundTo(v, DecimalPlaces)
}

// RoundTo rounds v to the given number of decimal places, half to even on the
// exact binary value. NaN and infinities are returned unchanged.
func RoundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return exactDecimal(v).RoundBank(places).InexactFloat64()
}

// exactDecimal returns the decimal equal to the binary value of v.
// v = frac * 2^exp with |frac| in [0.5, 1), so frac * 2^53 is an exact integer.
func exactDecimal(v float64) decimal.Decimal {
	if v == 0 {
		return decimal.Zero
	}
	frac, exp := math.Frexp(v)
	mant := big.NewInt(int64(frac * (1 << float64MantissaBits)))
	exp -= float64MantissaBits

	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	// m * 2^-k == m * 5^k * 10^-k
	k := int64(-exp)
	scaled := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	return decimal.NewFromBigInt(scaled.Mul(scaled, mant), int32(-k))
}
