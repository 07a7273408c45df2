package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/fdeint/internal/backend/cpu"
	"github.com/born-ml/fdeint/internal/backend/webgpu"
	"github.com/born-ml/fdeint/internal/config"
	"github.com/born-ml/fdeint/internal/metrics"
	"github.com/born-ml/fdeint/internal/report"
	"github.com/born-ml/fdeint/internal/solver"
	"github.com/born-ml/fdeint/internal/tensor"
)

type solveFlags struct {
	config      string
	problem     string
	method      string
	order       float64
	terminal    float64
	step        float64
	initial     float64
	dim         int
	dtype       string
	device      string
	memory      int
	corrector   int
	options     map[string]string
	trajectory  string
	plot        string
	metricsFile string
}

func newSolveCmd() *cobra.Command {
	var sf solveFlags

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Integrate a built-in problem",
		Long: `Integrates one of the built-in problems (see "fdeint problems") with the
chosen scheme and prints the final state. Values come from --config when
given; flags override the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}
			run, err := sf.run(cmd)
			if err != nil {
				return err
			}
			return runSolve(cmd.OutOrStdout(), logger, run)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&sf.config, "config", "c", "", "YAML run file")
	f.StringVarP(&sf.problem, "problem", "p", "", "Problem name")
	f.StringVarP(&sf.method, "method", "m", "", "Scheme: "+strings.Join(methodNames(), ", "))
	f.Float64VarP(&sf.order, "order", "b", 0, "Fractional order")
	f.Float64VarP(&sf.terminal, "terminal", "T", 0, "Terminal time")
	f.Float64Var(&sf.step, "step", 0, "Step size")
	f.Float64Var(&sf.initial, "initial", 0, "Initial value, repeated across components")
	f.IntVar(&sf.dim, "dim", 0, "Number of independent state components")
	f.StringVar(&sf.dtype, "dtype", "", "State dtype: float32 or float64")
	f.StringVar(&sf.device, "device", "", "Backend: cpu or webgpu")
	f.IntVar(&sf.memory, "memory", 0, "Predictor memory length, 0 keeps the full history")
	f.IntVar(&sf.corrector, "corrector-step", 0, "Number of corrector passes")
	f.StringToStringVarP(&sf.options, "option", "o", nil, "Scheme option key=value")
	f.StringVar(&sf.trajectory, "trajectory", "", "Write the trajectory as CSV to this file")
	f.StringVar(&sf.plot, "plot", "", "Save a trajectory plot (png, svg or pdf)")
	f.StringVar(&sf.metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format")
	return cmd
}

func methodNames() []string {
	methods := solver.Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.String()
	}
	return names
}

// run loads the config file, if any, and applies the flags that were set.
func (sf *solveFlags) run(cmd *cobra.Command) (*config.Run, error) {
	run := config.Default()
	if sf.config != "" {
		var err error
		if run, err = config.Load(sf.config); err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("problem") {
		run.Problem = sf.problem
	}
	if changed("method") {
		run.Method = sf.method
	}
	if changed("order") {
		run.Order = &sf.order
	}
	if changed("terminal") {
		run.TerminalTime = &sf.terminal
	}
	if changed("step") {
		run.StepSize = &sf.step
	}
	if changed("initial") {
		run.Initial = &sf.initial
	}
	if changed("dim") {
		run.Dim = sf.dim
	}
	if changed("dtype") {
		run.DType = sf.dtype
	}
	if changed("device") {
		run.Device = sf.device
	}

	setOption := func(key string, v any) {
		if run.Options == nil {
			run.Options = map[string]any{}
		}
		run.Options[key] = v
	}
	for k, v := range sf.options {
		setOption(k, v)
	}
	if changed("memory") {
		setOption("memory", sf.memory)
	}
	if changed("corrector-step") {
		setOption("corrector_step", sf.corrector)
	}

	if changed("trajectory") {
		run.Trajectory = sf.trajectory
	}
	if changed("plot") {
		run.Plot = sf.plot
	}
	if changed("metrics-file") {
		run.MetricsFile = sf.metricsFile
	}
	return run, nil
}

func runSolve(out io.Writer, logger *slog.Logger, run *config.Run) error {
	plan, err := run.Resolve()
	if err != nil {
		return err
	}

	backend, release, err := openBackend(plan.Device, logger)
	if err != nil {
		return err
	}
	defer release()

	values := make([]float64, plan.Dim)
	for i := range values {
		values[i] = plan.Initial
	}
	y0, err := tensor.FromFloat64(values, tensor.Shape{plan.Dim}, plan.DType, tensor.CPU)
	if err != nil {
		return err
	}

	rec := report.NewRecorder()
	if exact := plan.Problem.Exact; exact != nil {
		order, initial := plan.Order, plan.Initial
		rec.Exact = func(t float64) (float64, bool) { return exact(t, order, initial) }
	}
	m := metrics.New()

	y, err := solver.Solve(plan.Problem.RHS(backend, plan.Order), y0,
		plan.Order, plan.Terminal, plan.Step, plan.Scheme,
		solver.WithBackend(backend),
		solver.WithLogger(logger),
		solver.WithObserver(rec.Observer()),
		solver.WithMetrics(m),
	)
	if err != nil {
		if run.MetricsFile != "" {
			if werr := m.WriteTextfile(run.MetricsFile); werr != nil {
				logger.Error("failed to write metrics", "path", run.MetricsFile, "error", werr)
			}
		}
		return err
	}

	points := rec.Points()
	last := points[len(points)-1]
	fmt.Fprintf(out, "problem:  %s\n", plan.Problem.Name)
	fmt.Fprintf(out, "method:   %s (order %g, h %g)\n", plan.Scheme.Method(), plan.Order, plan.Step)
	fmt.Fprintf(out, "backend:  %s\n", backend.Name())
	fmt.Fprintf(out, "y(%g) = %v\n", last.T, y.Float64s())
	if rec.Exact != nil {
		if want, ok := rec.Exact(last.T); ok {
			worst := 0.0
			for _, v := range last.Y {
				worst = math.Max(worst, math.Abs(v-want))
			}
			fmt.Fprintf(out, "exact  = %g (max abs error %.3g)\n", want, worst)
		}
	}

	if run.Trajectory != "" {
		if err := saveTrajectory(rec, run.Trajectory, plan); err != nil {
			return err
		}
		logger.Info("wrote trajectory", "path", run.Trajectory, "points", len(points))
	}
	if run.Plot != "" {
		title := fmt.Sprintf("%s, %s, order %g", plan.Problem.Name, plan.Scheme.Method(), plan.Order)
		if err := rec.SavePlot(run.Plot, title); err != nil {
			return err
		}
		logger.Info("wrote plot", "path", run.Plot)
	}
	if run.MetricsFile != "" {
		if err := m.WriteTextfile(run.MetricsFile); err != nil {
			return err
		}
		logger.Info("wrote metrics", "path", run.MetricsFile)
	}
	return nil
}

// openBackend returns the backend for device and its release func. A
// missing GPU falls back to the CPU backend with a warning.
func openBackend(device string, logger *slog.Logger) (tensor.Backend, func(), error) {
	if device != config.DeviceWebGPU {
		return cpu.New(), func() {}, nil
	}

	gpu, err := webgpu.New()
	if errors.Is(err, webgpu.ErrUnavailable) {
		logger.Warn("webgpu unavailable, falling back to cpu", "error", err)
		return cpu.New(), func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return gpu, gpu.Release, nil
}

// saveTrajectory writes CSV, or SafeTensors when path ends in .safetensors.
func saveTrajectory(rec *report.Recorder, path string, plan *config.Plan) error {
	if filepath.Ext(path) != ".safetensors" {
		return rec.SaveCSV(path)
	}
	return rec.SaveSafeTensors(path, map[string]string{
		"problem":  plan.Problem.Name,
		"method":   plan.Scheme.Method().String(),
		"order":    strconv.FormatFloat(plan.Order, 'g', -1, 64),
		"step":     strconv.FormatFloat(plan.Step, 'g', -1, 64),
		"terminal": strconv.FormatFloat(plan.Terminal, 'g', -1, 64),
		"dtype":    plan.DType.String(),
	})
}
