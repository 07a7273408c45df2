package convergence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fdeint/internal/grid"
	"github.com/born-ml/fdeint/internal/parallel"
	"github.com/born-ml/fdeint/internal/problem"
	"github.com/born-ml/fdeint/internal/solver"
	"github.com/born-ml/fdeint/internal/tensor"
)

func relaxationStudy(t *testing.T, steps ...float64) *Study {
	t.Helper()
	p, err := problem.Lookup("relaxation")
	require.NoError(t, err)
	return &Study{
		Problem:  p,
		Scheme:   solver.GLOptions{},
		Order:    1,
		Terminal: 1,
		Initial:  1,
		Steps:    steps,
		DType:    tensor.Float64,
		Parallel: parallel.Config{Enabled: true, NumWorkers: 3},
	}
}

func TestStudy_EulerFirstOrder(t *testing.T) {
	results, err := relaxationStudy(t, 0.005, 0.02, 0.01).Run()
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Sorted from the largest step; at order one GL is explicit Euler, so
	// the error at t = 1-h is |(1-h)^(N-1) - exp(-(1-h))|.
	wantErr := []float64{0.0037093844767906448, 0.001847053372319274, 0.0009216136634890848}
	wantT := []float64{0.98, 0.99, 0.995}
	wantPoints := []int{50, 100, 200}
	for i, r := range results {
		assert.InDelta(t, wantT[i], r.T, 1e-12)
		assert.Equal(t, wantPoints[i], r.Points)
		assert.InDelta(t, wantErr[i], r.Error, 1e-9)
		assert.InDelta(t, math.Exp(-wantT[i]), r.Exact, 1e-12)
	}

	assert.True(t, math.IsNaN(results[0].Rate))
	assert.InDelta(t, 1.005954255644859, results[1].Rate, 1e-4)
	assert.InDelta(t, 1.002991544040913, results[2].Rate, 1e-4)
}

func TestStudy_SequentialMatchesParallel(t *testing.T) {
	par := relaxationStudy(t, 0.1, 0.05, 0.025)
	seq := relaxationStudy(t, 0.1, 0.05, 0.025)
	seq.Parallel = parallel.Config{Enabled: false}

	a, err := par.Run()
	require.NoError(t, err)
	b, err := seq.Run()
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].Value, b[i].Value)
		assert.Equal(t, a[i].Error, b[i].Error)
	}
}

func TestStudy_Errors(t *testing.T) {
	_, err := relaxationStudy(t).Run()
	assert.ErrorIs(t, err, ErrNoSteps)

	s := relaxationStudy(t, 0.1)
	s.Order = 0.5
	_, err = s.Run()
	assert.ErrorIs(t, err, ErrNoExact)

	_, err = relaxationStudy(t, 0.1, 2).Run()
	assert.ErrorIs(t, err, grid.ErrStepTooLarge)

	s = relaxationStudy(t, 0.1)
	s.Problem.Exact = nil
	_, err = s.Run()
	assert.ErrorIs(t, err, ErrNoExact)
}
