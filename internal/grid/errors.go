package grid

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNonPositive  = errors.New("must be positive")
	ErrStepTooLarge = errors.New("step size must be smaller than terminal time")
	ErrNotFinite    = errors.New("must be finite")
)

// ParamError reports an invalid solver parameter.
type ParamError struct {
	Param string  // "order", "terminal_time" or "step_size"
	Value float64 // Offending value
	Err   error   // One of the sentinels above
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s %g: %v", e.Param, e.Value, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ParamError) Unwrap() error {
	return e.Err
}
