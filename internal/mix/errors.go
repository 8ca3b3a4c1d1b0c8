package mix

import (
	"errors"

	"github.com/jmylchreest/tincture/internal/colour"
)

// Error classes. Every error returned by the engine wraps exactly one of
// ErrInput or ErrConversion.
var (
	// ErrInput reports a request the caller can fix.
	ErrInput = errors.New("invalid input")
	// ErrConversion reports a colour the appearance model cannot represent.
	ErrConversion = errors.New("conversion failed")
)

// Input error details.
var (
	ErrUnknownAlgorithm = wrapInput("unknown algorithm")
	ErrUnknownMethod    = wrapInput("unknown interpolation method")
	ErrUnknownHue       = wrapInput("unknown hue policy")
	ErrUnknownSchedule  = wrapInput("unknown schedule")
	ErrStepCount        = wrapInput("invalid step count")
	ErrGamma            = wrapInput("gamma must be a finite number")
)

type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }
func (e *inputError) Unwrap() error { return ErrInput }

func wrapInput(msg string) error { return &inputError{msg: msg} }

// IsInput reports whether err is the caller's fault, including malformed
// hex colours rejected by the colour package.
func IsInput(err error) bool {
	return errors.Is(err, ErrInput) || errors.Is(err, colour.ErrInvalidHex)
}

// IsConversion reports whether err is a conversion failure.
func IsConversion(err error) bool {
	return errors.Is(err, ErrConversion)
}
