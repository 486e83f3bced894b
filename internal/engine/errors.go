package engine

import "errors"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrNonPositiveSavings indicates the hybrid does not cost less per km to
	// run than the fuel car, so no break-even distance exists.
	ErrNonPositiveSavings = constError("hybrid is not cheaper to run")

	// ErrSavingsBelowResolution indicates the hybrid uses less fuel but both
	// per-km costs round to the same cent, so the premium is never paid back.
	ErrSavingsBelowResolution = constError("per-km saving rounds to zero")

	// ErrNoPricePremium indicates the hybrid does not cost more to buy, so
	// there is nothing to pay back.
	ErrNoPricePremium = constError("hybrid has no price premium")

	// ErrZeroMileage indicates a car whose efficiency normalizes to 0 km/L.
	ErrZeroMileage = constError("zero mileage")

	// ErrNegativePrice indicates a car with a negative purchase price.
	ErrNegativePrice = constError("negative car price")

	// ErrInsufficientHorizon indicates the inflation-adjusted scan reached its
	// distance limit without finding a crossover.
	ErrInsufficientHorizon = constError("no break-even within simulation horizon")
)

// IsAlreadyAhead reports whether err means the hybrid never needs paying back:
// it costs no more to buy, or its mileage is no better.
// ErrSavingsBelowResolution is not included: that hybrid is never paid back.
func IsAlreadyAhead(err error) bool {
	return errors.Is(err, ErrNoPricePremium) || errors.Is(err, ErrNonPositiveSavings)
}
