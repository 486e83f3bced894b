package units

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for unit conversions. Compare with errors.Is.
var (
	// ErrZeroDivisor is returned by reciprocal conversions (L/100km <-> km/L)
	// given a zero value.
	ErrZeroDivisor = constError("reciprocal conversion of zero value")

	// ErrUnsupportedUnit indicates a unit tag outside the family's closed set.
	ErrUnsupportedUnit = constError("unsupported unit")

	// ErrNegativeValue indicates a negative quantity passed to a constructor.
	ErrNegativeValue = constError("negative quantity")
)
