// Package convergence measures the empirical order of a scheme by solving a
// problem with a known solution at several step sizes.
package convergence

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/born-ml/fdeint/internal/backend/cpu"
	"github.com/born-ml/fdeint/internal/grid"
	"github.com/born-ml/fdeint/internal/logging"
	"github.com/born-ml/fdeint/internal/metrics"
	"github.com/born-ml/fdeint/internal/parallel"
	"github.com/born-ml/fdeint/internal/problem"
	"github.com/born-ml/fdeint/internal/solver"
	"github.com/born-ml/fdeint/internal/tensor"
)

// Errors.
var (
	ErrNoExact = errors.New("problem has no exact solution for this order")
	ErrNoSteps = errors.New("at least one step size is required")
)

// Study configures a convergence run.
type Study struct {
	Problem  problem.Problem
	Scheme   solver.Scheme
	Order    float64
	Terminal float64
	Initial  float64
	Steps    []float64
	DType    tensor.DataType

	Parallel parallel.Config
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Result is the outcome for one step size.
type Result struct {
	Step   float64
	Points int
	T      float64 // time of the returned state
	Value  float64
	Exact  float64
	Error  float64 // |Value - Exact|

	// Rate is log(e_prev/e)/log(h_prev/h) against the next larger step,
	// NaN for the largest.
	Rate float64
}

// Run solves the problem once per step size, concurrently, and returns the
// results ordered from the largest step to the smallest.
func (s *Study) Run() ([]Result, error) {
	if len(s.Steps) == 0 {
		return nil, ErrNoSteps
	}
	if s.Problem.Exact == nil {
		return nil, fmt.Errorf("%s: %w", s.Problem.Name, ErrNoExact)
	}
	logger := s.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	steps := append([]float64(nil), s.Steps...)
	sort.Sort(sort.Reverse(sort.Float64Slice(steps)))

	results := make([]Result, len(steps))
	err := parallel.For(len(steps), func(i int) error {
		r, err := s.solveOne(steps[i], logger)
		if err != nil {
			return fmt.Errorf("step %g: %w", steps[i], err)
		}
		results[i] = r
		return nil
	}, s.Parallel)
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Rate = math.NaN()
		if i > 0 {
			prev := results[i-1]
			results[i].Rate = math.Log(prev.Error/results[i].Error) / math.Log(prev.Step/results[i].Step)
		}
	}
	return results, nil
}

func (s *Study) solveOne(h float64, logger *slog.Logger) (Result, error) {
	g, err := grid.New(s.Terminal, h)
	if err != nil {
		return Result{}, err
	}

	// The Adams schemes end one step past the grid, so the time of the
	// returned state is taken from the last observed one.
	var tLast float64
	observe := func(_, _ int, t float64, _ *tensor.RawTensor) { tLast = t }

	b := cpu.New()
	y0 := tensor.Scalar(s.Initial, s.DType, tensor.CPU)
	y, err := solver.Solve(s.Problem.RHS(b, s.Order), y0, s.Order, s.Terminal, h, s.Scheme,
		solver.WithBackend(b),
		solver.WithLogger(logger),
		solver.WithObserver(observe),
		solver.WithMetrics(s.Metrics),
	)
	if err != nil {
		return Result{}, err
	}

	exact, ok := s.Problem.Exact(tLast, s.Order, s.Initial)
	if !ok {
		return Result{}, fmt.Errorf("%s at order %g: %w", s.Problem.Name, s.Order, ErrNoExact)
	}

	v := y.Item()
	logger.Debug("convergence point", "step", h, "t", tLast, "value", v, "exact", exact)
	return Result{
		Step:   h,
		Points: g.Len(),
		T:      tLast,
		Value:  v,
		Exact:  exact,
		Error:  math.Abs(v - exact),
	}, nil
}
