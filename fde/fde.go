// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package fde

import (
	"log/slog"

	"github.com/born-ml/fdeint/internal/solver"
	"github.com/born-ml/fdeint/tensor"
)

// Func is the right-hand side f(t, y).
type Func = solver.Func

// Observer receives every state a solve computes.
type Observer = solver.Observer

// Option configures a Solve call.
type Option = solver.Option

// Method names a scheme.
type Method = solver.Method

// Available methods.
const (
	MethodPredictor  = solver.MethodPredictor
	MethodCorrector  = solver.MethodCorrector
	MethodImplicitL1 = solver.MethodImplicitL1
	MethodGL         = solver.MethodGL
	MethodTrap       = solver.MethodTrap
)

// Scheme selects a method with its options. It is implemented only by the
// option types below.
type Scheme = solver.Scheme

// Scheme options.
type (
	PredictorOptions  = solver.PredictorOptions
	CorrectorOptions  = solver.CorrectorOptions
	ImplicitL1Options = solver.ImplicitL1Options
	GLOptions         = solver.GLOptions
	TrapOptions       = solver.TrapOptions
)

// Errors returned by Solve and the scheme constructors.
var (
	ErrInvalidMethod    = solver.ErrInvalidMethod
	ErrUnknownOption    = solver.ErrUnknownOption
	ErrInvalidOption    = solver.ErrInvalidOption
	ErrNilFunc          = solver.ErrNilFunc
	ErrNilState         = solver.ErrNilState
	ErrUnsupportedDType = solver.ErrUnsupportedDType
	ErrEvaluation       = solver.ErrEvaluation
)

// Solve integrates D^order y = f(t, y) from y0 over [0, terminal) with the
// given step and returns the state at the last grid point.
//
// Example:
//
//	y, err := fde.Solve(f, y0, 0.5, 10, 0.1, fde.PredictorOptions{Memory: 50})
func Solve(f Func, y0 *tensor.RawTensor, order, terminal, step float64, scheme Scheme, opts ...Option) (*tensor.RawTensor, error) {
	return solver.Solve(f, y0, order, terminal, step, scheme, opts...)
}

// SolveMethod is Solve with the method's default options.
func SolveMethod(f Func, y0 *tensor.RawTensor, order, terminal, step float64, method Method, opts ...Option) (*tensor.RawTensor, error) {
	return solver.SolveMethod(f, y0, order, terminal, step, method, opts...)
}

// ParseMethod maps a method name such as "corrector" to a Method.
func ParseMethod(name string) (Method, error) {
	return solver.ParseMethod(name)
}

// Methods returns every available method.
func Methods() []Method {
	return solver.Methods()
}

// NewScheme builds the scheme for m from loosely typed options, as read from
// a config file or command line. Unknown keys fail with ErrUnknownOption.
func NewScheme(m Method, options map[string]any) (Scheme, error) {
	return solver.NewScheme(m, options)
}

// DefaultScheme returns m with its default options.
func DefaultScheme(m Method) (Scheme, error) {
	return solver.DefaultScheme(m)
}

// WithBackend selects the array backend. Defaults to the CPU backend.
func WithBackend(b tensor.Backend) Option {
	return solver.WithBackend(b)
}

// WithLogger sets the logger for debug output and warnings.
func WithLogger(l *slog.Logger) Option {
	return solver.WithLogger(l)
}

// WithObserver registers a callback for every computed state.
func WithObserver(o Observer) Option {
	return solver.WithObserver(o)
}
