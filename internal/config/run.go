// Package config loads solve runs from YAML files and resolves them against
// the problem library and the solver schemes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/fdeint/internal/problem"
	"github.com/born-ml/fdeint/internal/solver"
	"github.com/born-ml/fdeint/internal/tensor"
)

// ErrInvalidDevice is returned for device names other than cpu and webgpu.
var ErrInvalidDevice = errors.New("invalid device")

// Supported device names.
const (
	DeviceCPU    = "cpu"
	DeviceWebGPU = "webgpu"
)

// Run describes one solve. Nil numeric fields fall back to the problem's
// defaults. A value that is present is passed through as given, so an
// explicit zero order, time or step fails in solver.Solve.
type Run struct {
	Problem      string         `yaml:"problem"`
	Method       string         `yaml:"method"`
	Order        *float64       `yaml:"order"`
	TerminalTime *float64       `yaml:"terminal_time"`
	StepSize     *float64       `yaml:"step_size"`
	Initial      *float64       `yaml:"initial"`
	Dim          int            `yaml:"dim"`
	DType        string         `yaml:"dtype"`
	Device       string         `yaml:"device"`
	Options      map[string]any `yaml:"options"`

	Trajectory  string `yaml:"trajectory"`
	Plot        string `yaml:"plot"`
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the run used when no file is given.
func Default() *Run {
	return &Run{
		Problem: "polynomial",
		Method:  solver.MethodCorrector.String(),
		Dim:     1,
		DType:   tensor.Float64.String(),
		Device:  DeviceCPU,
	}
}

// Load reads a YAML run file on top of Default. Unknown top-level keys are
// rejected.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	run := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(run); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return run, nil
}

// Plan is a fully resolved, validated-by-type run.
type Plan struct {
	Problem  problem.Problem
	Scheme   solver.Scheme
	Order    float64
	Terminal float64
	Step     float64
	Initial  float64
	Dim      int
	DType    tensor.DataType
	Device   string
}

// Resolve looks up the problem and method, decodes the scheme options and
// fills unset values from the problem defaults. Range checks on order, time
// and step are left to solver.Solve.
func (r *Run) Resolve() (*Plan, error) {
	p, err := problem.Lookup(r.Problem)
	if err != nil {
		return nil, err
	}

	method, err := solver.ParseMethod(r.Method)
	if err != nil {
		return nil, err
	}
	scheme, err := solver.NewScheme(method, r.Options)
	if err != nil {
		return nil, err
	}

	dtype, err := tensor.ParseDataType(r.DType)
	if err != nil {
		return nil, err
	}

	device := r.Device
	switch device {
	case "":
		device = DeviceCPU
	case DeviceCPU, DeviceWebGPU:
	default:
		return nil, fmt.Errorf("%w %q: must be %s or %s", ErrInvalidDevice, device, DeviceCPU, DeviceWebGPU)
	}

	plan := &Plan{
		Problem:  p,
		Scheme:   scheme,
		Order:    valueOr(r.Order, p.Order),
		Terminal: valueOr(r.TerminalTime, p.Terminal),
		Step:     valueOr(r.StepSize, p.Step),
		Initial:  valueOr(r.Initial, p.Initial),
		Dim:      max(r.Dim, 1),
		DType:    dtype,
		Device:   device,
	}
	return plan, nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
