// Package solver implements the fixed-step fractional integrators:
// Adams–Bashforth predictor, predictor–corrector, L1, Grünwald–Letnikov and
// product trapezoidal.
//
// Every scheme walks a uniform grid and accumulates a weighted sum over the
// whole history at each step, so a solve costs O(N²) backend operations.
// Only the final state is returned; use WithObserver for trajectories.
package solver

import (
	"fmt"
	"time"

	"github.com/born-ml/fdeint/internal/grid"
	"github.com/born-ml/fdeint/internal/tensor"
)

// Solve integrates D^β y = f(t, y), y(0) = y0 over the half-open grid
// [0, terminal) stepped by step, using scheme.
//
// Parameter errors are reported before any stepping. Panics raised by f or
// by the backend (e.g. a shape mismatch) are returned as ErrEvaluation.
func Solve(f Func, y0 *tensor.RawTensor, order, terminal, step float64, scheme Scheme, opts ...Option) (result *tensor.RawTensor, err error) {
	s := newSettings(opts)

	if f == nil {
		return nil, ErrNilFunc
	}
	if y0 == nil {
		return nil, ErrNilState
	}
	if !y0.DType().Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, y0.DType())
	}
	if scheme == nil {
		return nil, fmt.Errorf("%w: nil scheme", ErrInvalidMethod)
	}
	if err := scheme.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", scheme.Method(), err)
	}

	warn, err := grid.CheckOrder(order)
	if err != nil {
		return nil, err
	}
	g, err := grid.New(terminal, step)
	if err != nil {
		return nil, err
	}

	method := scheme.Method().String()
	if warn {
		s.logger.Warn("fractional order above 1 is outside the initial-value formulation", "order", order, "method", method)
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: %s: %v", ErrEvaluation, method, rec)
		}
		s.metrics.Solve(method, time.Since(start), err)
		if err != nil {
			s.logger.Debug("solve failed", "method", method, "error", err)
		}
	}()

	// The backend owns placement; the caller's y0 is never touched.
	if y0.Device() != s.backend.Device() {
		y0, err = tensor.FromFloat64(y0.Float64s(), y0.Shape(), y0.DType(), s.backend.Device())
		if err != nil {
			return nil, err
		}
	}

	r := &run{
		f:      f,
		y0:     y0,
		beta:   order,
		grid:   g,
		h:      g.Step(),
		b:      s.backend,
		obs:    s.observer,
		m:      s.metrics,
		method: method,
	}

	s.logger.Debug("solve",
		"method", method,
		"points", g.Len(),
		"step", r.h,
		"order", order,
		"backend", s.backend.Name(),
		"dtype", y0.DType(),
		"shape", []int(y0.Shape()),
	)

	switch sc := scheme.(type) {
	case PredictorOptions:
		result, _, err = r.predictor(sc)
	case CorrectorOptions:
		result, err = r.corrector(sc)
	case ImplicitL1Options:
		result, err = r.implicitL1()
	case GLOptions:
		result, err = r.grunwaldLetnikov()
	case TrapOptions:
		result, err = r.productTrapezoidal()
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %T", ErrInvalidMethod, scheme)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("solve done", "method", method, "elapsed", time.Since(start))
	return result, nil
}

// SolveMethod is Solve with the scheme's default options.
func SolveMethod(f Func, y0 *tensor.RawTensor, order, terminal, step float64, method Method, opts ...Option) (*tensor.RawTensor, error) {
	scheme, err := DefaultScheme(method)
	if err != nil {
		return nil, err
	}
	return Solve(f, y0, order, terminal, step, scheme, opts...)
}
