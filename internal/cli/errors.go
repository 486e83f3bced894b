package cli

import (
	"errors"

	"github.com/rshade/breakeven/internal/config"
	"github.com/rshade/breakeven/internal/engine"
	"github.com/rshade/breakeven/internal/units"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidInput marks a flag or argument the user must correct.
var ErrInvalidInput = constError("invalid input")

//nolint:gochecknoglobals // Closed list of errors the user can fix by changing input.
var inputErrors = []error{
	ErrInvalidInput,
	units.ErrUnsupportedUnit,
	units.ErrNegativeValue,
	units.ErrZeroDivisor,
	config.ErrInvalidSettings,
	config.ErrUnknownCurrency,
	engine.ErrZeroMileage,
	engine.ErrNegativePrice,
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return ExitInvalidInput
		}
	}
	return ExitFailure
}
