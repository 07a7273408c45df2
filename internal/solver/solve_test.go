package solver

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fdeint/internal/backend/cpu"
	"github.com/born-ml/fdeint/internal/logging"
	"github.com/born-ml/fdeint/internal/metrics"
	"github.com/born-ml/fdeint/internal/tensor"
)

var backend = cpu.New()

// polynomial is the right-hand side whose exact solution at β=0.5 is
// y(t) = t² - t.
func polynomial(t float64, y *tensor.RawTensor) *tensor.RawTensor {
	return backend.AddScalar(backend.MulScalar(y, -1), polynomialForcing(t))
}

func polynomialForcing(t float64) float64 {
	return 2/math.Gamma(2.5)*math.Pow(t, 1.5) - 1/math.Gamma(1.5)*math.Pow(t, 0.5) + t*t - t
}

func relaxation(_ float64, y *tensor.RawTensor) *tensor.RawTensor {
	return backend.MulScalar(y, -1)
}

func scalar(v float64) *tensor.RawTensor {
	return tensor.Scalar(v, tensor.Float64, tensor.CPU)
}

func TestSolve_PolynomialExactness(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		ref    float64 // float64 reference run of the same scheme
		tol    float64 // distance to the exact value 90
	}{
		{"Predictor", PredictorOptions{}, 89.72223194931932, 0.5},
		{"Corrector", DefaultCorrectorOptions(), 89.97646593854307, 0.1},
		{"ImplicitL1", ImplicitL1Options{}, 91.51133281058014, 2.0},
		{"GL", GLOptions{}, 89.60114420457639, 0.5},
		{"Trap", TrapOptions{}, 89.4798910910169, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, err := Solve(polynomial, scalar(0), 0.5, 10, 0.1, tt.scheme)
			require.NoError(t, err)
			require.Empty(t, y.Shape())

			assert.InDelta(t, tt.ref, y.Item(), 1e-6)
			assert.InDelta(t, 90, y.Item(), tt.tol)
		})
	}
}

func TestSolve_Float32(t *testing.T) {
	y0 := tensor.Scalar(0, tensor.Float32, tensor.CPU)

	for _, scheme := range []Scheme{PredictorOptions{}, GLOptions{}} {
		y, err := Solve(polynomial, y0, 0.5, 10, 0.1, scheme)
		require.NoError(t, err)
		assert.Equal(t, tensor.Float32, y.DType())
		assert.InDelta(t, 90, y.Item(), 0.6, "%s", scheme.Method())
	}
}

func TestSolve_VectorState(t *testing.T) {
	want, err := Solve(polynomial, scalar(0), 0.5, 10, 0.1, DefaultCorrectorOptions())
	require.NoError(t, err)

	y0, err := tensor.FromFloat64([]float64{0, 0, 0}, tensor.Shape{3}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	y, err := Solve(polynomial, y0, 0.5, 10, 0.1, DefaultCorrectorOptions())
	require.NoError(t, err)
	require.True(t, y.Shape().Equal(tensor.Shape{3}))
	for _, v := range y.Float64s() {
		assert.InDelta(t, want.Item(), v, 1e-9)
	}

	// y0 is never modified.
	assert.Equal(t, []float64{0, 0, 0}, y0.Float64s())
}

func TestSolve_BroadcastRHS(t *testing.T) {
	// f returns a scalar for a vector state; it is expanded to the state shape.
	constant := func(_ float64, _ *tensor.RawTensor) *tensor.RawTensor { return scalar(1) }

	y0, err := tensor.FromFloat64([]float64{0, 1}, tensor.Shape{2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	y, err := Solve(constant, y0, 1, 1, 0.25, PredictorOptions{})
	require.NoError(t, err)
	// β=1: y_N = y0 + N h f = y0 + 1
	assert.InDeltaSlice(t, []float64{1, 2}, y.Float64s(), 1e-12)
}

func TestSolve_MemoryTruncation(t *testing.T) {
	full, err := Solve(polynomial, scalar(0), 0.5, 10, 0.1, PredictorOptions{})
	require.NoError(t, err)

	// N = 100: zero or any window of at least N-1 terms is the full history.
	for _, m := range []int{0, 99, 100, 399} {
		y, err := Solve(polynomial, scalar(0), 0.5, 10, 0.1, PredictorOptions{Memory: m})
		require.NoError(t, err)
		assert.InDelta(t, full.Item(), y.Item(), 1e-12, "memory=%d", m)
	}

	short, err := Solve(polynomial, scalar(0), 0.5, 10, 0.1, PredictorOptions{Memory: 10})
	require.NoError(t, err)
	assert.InDelta(t, 69.93699126197006, short.Item(), 1e-6)
}

func TestSolve_CorrectorImprovesPredictor(t *testing.T) {
	pred, err := Solve(polynomial, scalar(0), 0.5, 10, 0.1, CorrectorOptions{Steps: 0})
	require.NoError(t, err)
	assert.InDelta(t, 89.72223194931932, pred.Item(), 1e-6)

	predErr := math.Abs(pred.Item() - 90)
	refs := []float64{89.976465938543, 89.961105962303, 89.961105962303}
	for steps := 1; steps <= 3; steps++ {
		y, err := Solve(polynomial, scalar(0), 0.5, 10, 0.1, CorrectorOptions{Steps: steps})
		require.NoError(t, err)
		assert.InDelta(t, refs[steps-1], y.Item(), 1e-6, "steps=%d", steps)
		assert.LessOrEqual(t, math.Abs(y.Item()-90), predErr, "steps=%d", steps)
	}
}

// scalarCorrector is a plain float64 loop over the predictor–corrector
// recurrence. After the first pass the predicted term shares the slice
// the pass writes into.
func scalarCorrector(f func(t, y float64) float64, y0, beta, h float64, n, steps int) float64 {
	g := 1 / math.Gamma(beta)

	predicted := make([]float64, n)
	y := y0
	for k := 0; k < n; k++ {
		predicted[k] = f(float64(k)*h, y)
		sum := 0.0
		for j := 0; j <= k; j++ {
			b := math.Pow(h, beta) / beta * (math.Pow(float64(k+1-j), beta) - math.Pow(float64(k-j), beta))
			sum += b * predicted[j]
		}
		y = y0 + g*sum
	}

	a := math.Pow(h, beta) / (beta * (beta + 1))
	corrected := make([]float64, n)
	for p := 0; p < steps; p++ {
		y = y0
		for k := 0; k < n; k++ {
			corrected[k] = f(float64(k)*h, y)
			kf := float64(k)
			sum := a * (math.Pow(kf, beta+1) - (kf-beta)*math.Pow(kf+1, beta)) * corrected[0]
			for j := 1; j <= k; j++ {
				w := a * (math.Pow(float64(k+2-j), beta+1) + math.Pow(float64(k-j), beta+1) - 2*math.Pow(float64(k+1-j), beta+1))
				sum += w * corrected[j]
			}
			y = y0 + g*(sum+a*predicted[k])
		}
		predicted = corrected
	}
	return y
}

func TestSolve_CorrectorMatchesScalarLoop(t *testing.T) {
	f := func(t, y float64) float64 { return -y + polynomialForcing(t) }

	for _, steps := range []int{1, 2, 3, 4} {
		want := scalarCorrector(f, 0, 0.5, 0.1, 100, steps)
		y, err := Solve(polynomial, scalar(0), 0.5, 10, 0.1, CorrectorOptions{Steps: steps})
		require.NoError(t, err)
		assert.InDelta(t, want, y.Item(), 1e-9, "steps=%d", steps)
	}

	// Passes after the first read their own history, so they agree.
	two, err := Solve(relaxation, scalar(1), 0.7, 2, 0.05, CorrectorOptions{Steps: 2})
	require.NoError(t, err)
	five, err := Solve(relaxation, scalar(1), 0.7, 2, 0.05, CorrectorOptions{Steps: 5})
	require.NoError(t, err)
	assert.InDelta(t, two.Item(), five.Item(), 1e-12)
}

func TestSolve_OrderOneReducesToEuler(t *testing.T) {
	// y' = -y, y(0) = 1, h = 0.01, N = 100.
	eulerN := math.Pow(0.99, 100)
	eulerN1 := math.Pow(0.99, 99)

	tests := []struct {
		name   string
		scheme Scheme
		want   float64
	}{
		{"Predictor", PredictorOptions{}, eulerN},
		{"Corrector", DefaultCorrectorOptions(), 0.3678809894614783},
		{"ImplicitL1", ImplicitL1Options{}, eulerN1},
		{"GL", GLOptions{}, eulerN1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, err := Solve(relaxation, scalar(1), 1, 1, 0.01, tt.scheme)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, y.Item(), 1e-9)
		})
	}
}

func TestSolve_Validation(t *testing.T) {
	tests := []struct {
		name     string
		f        Func
		y0       *tensor.RawTensor
		order    float64
		terminal float64
		step     float64
		scheme   Scheme
		param    string
	}{
		{"StepEqualsTerminal", polynomial, scalar(0), 0.5, 1, 1, GLOptions{}, "step_size"},
		{"StepTooLarge", polynomial, scalar(0), 0.5, 1, 2, GLOptions{}, "step_size"},
		{"ZeroOrder", polynomial, scalar(0), 0, 1, 0.1, GLOptions{}, "order"},
		{"NegativeOrder", polynomial, scalar(0), -0.5, 1, 0.1, GLOptions{}, "order"},
		{"ZeroStep", polynomial, scalar(0), 0.5, 1, 0, GLOptions{}, "step_size"},
		{"NegativeTerminal", polynomial, scalar(0), 0.5, -1, 0.1, GLOptions{}, "terminal_time"},
		{"NegativeMemory", polynomial, scalar(0), 0.5, 1, 0.1, PredictorOptions{Memory: -1}, "memory"},
		{"NegativeSteps", polynomial, scalar(0), 0.5, 1, 0.1, CorrectorOptions{Steps: -1}, "corrector_step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			f := func(t float64, y *tensor.RawTensor) *tensor.RawTensor {
				calls++
				return tt.f(t, y)
			}

			y, err := Solve(f, tt.y0, tt.order, tt.terminal, tt.step, tt.scheme)
			require.Error(t, err)
			assert.Nil(t, y)
			assert.Contains(t, err.Error(), tt.param)
			assert.Zero(t, calls, "no stepping before validation")
		})
	}

	_, err := Solve(nil, scalar(0), 0.5, 1, 0.1, GLOptions{})
	assert.ErrorIs(t, err, ErrNilFunc)

	_, err = Solve(polynomial, nil, 0.5, 1, 0.1, GLOptions{})
	assert.ErrorIs(t, err, ErrNilState)

	_, err = Solve(polynomial, scalar(0), 0.5, 1, 0.1, nil)
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = Solve(polynomial, scalar(0), 0.5, 1, 0.1, &GLOptions{})
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestSolve_OrderAboveOneWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, slog.LevelWarn)

	y, err := Solve(relaxation, scalar(1), 1.5, 1, 0.1, GLOptions{}, WithLogger(logger))
	require.NoError(t, err)
	assert.NotNil(t, y)
	assert.Contains(t, buf.String(), "fractional order above 1")
	assert.Contains(t, buf.String(), "order=1.5")
}

func TestSolve_EvaluationErrors(t *testing.T) {
	y0, err := tensor.FromFloat64([]float64{1, 2, 3}, tensor.Shape{3}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	nilRHS := func(float64, *tensor.RawTensor) *tensor.RawTensor { return nil }
	_, err = Solve(nilRHS, y0, 0.5, 1, 0.1, GLOptions{})
	assert.ErrorIs(t, err, ErrEvaluation)

	badShape := func(float64, *tensor.RawTensor) *tensor.RawTensor {
		raw, _ := tensor.FromFloat64([]float64{1, 2}, tensor.Shape{2}, tensor.Float64, tensor.CPU)
		return raw
	}
	_, err = Solve(badShape, y0, 0.5, 1, 0.1, PredictorOptions{})
	assert.ErrorIs(t, err, ErrEvaluation)
	assert.Contains(t, err.Error(), "predictor")

	panicky := func(float64, *tensor.RawTensor) *tensor.RawTensor { panic("rhs exploded") }
	_, err = Solve(panicky, y0, 0.5, 1, 0.1, TrapOptions{})
	assert.ErrorIs(t, err, ErrEvaluation)
	assert.Contains(t, err.Error(), "rhs exploded")
}

func TestSolve_Observer(t *testing.T) {
	type call struct {
		pass, index int
		t           float64
	}

	record := func(calls *[]call) Observer {
		return func(pass, index int, t float64, _ *tensor.RawTensor) {
			*calls = append(*calls, call{pass, index, t})
		}
	}

	// T=1, h=0.25: grid 0, 0.25, 0.5, 0.75.
	var gl []call
	_, err := Solve(relaxation, scalar(1), 0.5, 1, 0.25, GLOptions{}, WithObserver(record(&gl)))
	require.NoError(t, err)
	require.Len(t, gl, 4)
	for i, c := range gl {
		assert.Equal(t, 0, c.pass)
		assert.Equal(t, i, c.index)
		assert.InDelta(t, 0.25*float64(i), c.t, 1e-12)
	}

	// Predictor states run one index past the grid, ending at T.
	var corr []call
	_, err = Solve(relaxation, scalar(1), 0.5, 1, 0.25, CorrectorOptions{Steps: 2}, WithObserver(record(&corr)))
	require.NoError(t, err)
	require.Len(t, corr, 3*5)
	assert.Equal(t, call{0, 4, 1}, corr[4])
	assert.Equal(t, call{1, 0, 0}, corr[5])
	assert.Equal(t, 2, corr[len(corr)-1].pass)
}

func TestSolve_Metrics(t *testing.T) {
	m := metrics.New()

	_, err := Solve(relaxation, scalar(1), 0.5, 1, 0.1, CorrectorOptions{Steps: 2}, WithMetrics(m))
	require.NoError(t, err)

	// N = 10 steps per pass, three passes.
	assert.Equal(t, 1, testutil.CollectAndCount(m.Registry(), "fdeint_solves_total"))
	assert.Equal(t, 30.0, metricValue(t, m, "fdeint_steps_total"))
	assert.Equal(t, 30.0, metricValue(t, m, "fdeint_rhs_evaluations_total"))
}

func metricValue(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestSolveMethod(t *testing.T) {
	y, err := SolveMethod(polynomial, scalar(0), 0.5, 10, 0.1, MethodCorrector)
	require.NoError(t, err)
	assert.InDelta(t, 89.97646593854307, y.Item(), 1e-6)

	_, err = SolveMethod(polynomial, scalar(0), 0.5, 10, 0.1, Method(42))
	assert.ErrorIs(t, err, ErrInvalidMethod)
}
