package config

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidSettings indicates a session setting outside its allowed range.
	ErrInvalidSettings = constError("invalid settings")

	// ErrUnknownCurrency indicates a currency with no region defaults.
	ErrUnknownCurrency = constError("unknown currency")
)
