package solver

import "errors"

// Common errors.
var (
	ErrInvalidMethod    = errors.New("invalid method")
	ErrUnknownOption    = errors.New("unknown option")
	ErrInvalidOption    = errors.New("invalid option value")
	ErrNilFunc          = errors.New("nil right-hand-side function")
	ErrNilState         = errors.New("nil initial state")
	ErrUnsupportedDType = errors.New("unsupported dtype")
	ErrEvaluation       = errors.New("evaluation failed")
)
