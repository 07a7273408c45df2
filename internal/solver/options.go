package solver

import (
	"log/slog"

	"github.com/born-ml/fdeint/internal/backend/cpu"
	"github.com/born-ml/fdeint/internal/logging"
	"github.com/born-ml/fdeint/internal/metrics"
	"github.com/born-ml/fdeint/internal/tensor"
)

// Func is the right-hand side f(t, y) of D^β y = f(t, y). It receives a
// state shaped like y0 and must return a tensor that broadcasts to it.
// Returned tensors are stored in the solver history and must not be
// modified afterwards.
type Func func(t float64, y *tensor.RawTensor) *tensor.RawTensor

// Observer receives every state a solve computes. pass is 0 for the
// predictor (or the only pass of the other schemes) and 1..Steps for
// corrector passes; index i is the grid index the state approximates, with
// i = 0 the initial state.
type Observer func(pass, index int, t float64, y *tensor.RawTensor)

// Option configures a Solve call.
type Option func(*settings)

type settings struct {
	backend  tensor.Backend
	logger   *slog.Logger
	observer Observer
	metrics  *metrics.Metrics
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.backend == nil {
		s.backend = cpu.New()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// WithBackend selects the array backend. Defaults to the CPU backend.
func WithBackend(b tensor.Backend) Option {
	return func(s *settings) {
		s.backend = b
	}
}

// WithLogger sets the logger for debug output and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithObserver registers a callback for every computed state.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		s.observer = o
	}
}

// WithMetrics records solves, steps and evaluations into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}
