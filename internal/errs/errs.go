// Package errs defines the error kinds shared by every stage of the pipeline.
// Each kind is a sentinel; concrete errors wrap it together with the
// underlying cause so that callers can use errors.Is on either.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFlagValue is returned when a flag that requires a value was
	// given none.
	ErrMissingFlagValue = errors.New("missing flag value")

	// ErrImportResolution is returned when a requested module cannot be loaded.
	ErrImportResolution = errors.New("import resolution failed")

	// ErrIndexOutOfRange is returned when a positional name or explicit index
	// points outside the current record.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownName is returned when a name matches no binding tier.
	ErrUnknownName = errors.New("unknown name")

	// ErrEvaluation is returned for any failure raised by the expression engine.
	ErrEvaluation = errors.New("evaluation failed")
)

// Wrap joins kind with cause. The message reads "kind: cause".
func Wrap(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

// Wrapf is Wrap with a formatted cause.
func Wrapf(kind error, format string, a ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, a...))
}

// Kind reports which of the sentinel kinds err carries, or nil.
func Kind(err error) error {
	for _, kind := range []error{ErrMissingFlagValue, ErrImportResolution, ErrIndexOutOfRange, ErrUnknownName, ErrEvaluation} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
