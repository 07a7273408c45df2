// Package grid validates solver parameters and builds the uniform time grid
// every scheme steps over.
package grid

import (
	"math"
)

// Grid is a strictly increasing, equally spaced sequence of time points
// starting at zero.
type Grid struct {
	points []float64
}

// New builds the half-open grid [0, terminal) stepped by step, i.e.
// ceil(terminal/step) points i*step.
//
// Fails with a *ParamError when either value is non-finite or non-positive,
// or when step >= terminal.
func New(terminal, step float64) (*Grid, error) {
	if err := positive("terminal_time", terminal); err != nil {
		return nil, err
	}
	if err := positive("step_size", step); err != nil {
		return nil, err
	}
	if step >= terminal {
		return nil, &ParamError{Param: "step_size", Value: step, Err: ErrStepTooLarge}
	}

	n := int(math.Ceil(terminal / step))
	points := make([]float64, n)
	for i := range points {
		points[i] = float64(i) * step
	}
	return &Grid{points: points}, nil
}

// CheckOrder validates the fractional order. It returns warn=true for
// orders above 1, which are accepted but fall outside the initial-value
// formulation.
func CheckOrder(order float64) (warn bool, err error) {
	if err := positive("order", order); err != nil {
		return false, err
	}
	return order > 1, nil
}

// Len returns the number of grid points N.
func (g *Grid) Len() int {
	return len(g.points)
}

// At returns t_i.
func (g *Grid) At(i int) float64 {
	return g.points[i]
}

// Points returns a copy of the grid.
func (g *Grid) Points() []float64 {
	return append([]float64(nil), g.points...)
}

// Step returns the derived spacing (t_{N-1} - t_0) / (N - 1).
func (g *Grid) Step() float64 {
	n := len(g.points)
	return (g.points[n-1] - g.points[0]) / float64(n-1)
}

func positive(param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ParamError{Param: param, Value: v, Err: ErrNotFinite}
	}
	if v <= 0 {
		return &ParamError{Param: param, Value: v, Err: ErrNonPositive}
	}
	return nil
}
