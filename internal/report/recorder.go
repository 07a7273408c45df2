// Package report collects solver trajectories and writes them as CSV or plots.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/born-ml/fdeint/internal/solver"
	"github.com/born-ml/fdeint/internal/tensor"
)

// Point is one recorded state.
type Point struct {
	T float64
	Y []float64
}

// Recorder keeps the trajectory of the latest solver pass. Earlier passes
// (the predictor run under a corrector) are discarded when a new one starts.
type Recorder struct {
	// Exact, if set, adds a reference column / curve.
	Exact func(t float64) (float64, bool)

	pass   int
	points []Point
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe implements solver.Observer.
func (r *Recorder) Observe(pass, _ int, t float64, y *tensor.RawTensor) {
	if pass != r.pass {
		r.pass = pass
		r.points = r.points[:0]
	}
	r.points = append(r.points, Point{T: t, Y: y.Float64s()})
}

// Observer returns Observe as a solver.Observer.
func (r *Recorder) Observer() solver.Observer {
	return r.Observe
}

// Points returns the recorded trajectory.
func (r *Recorder) Points() []Point {
	return r.points
}

// WriteCSV writes a header row "t,y[,y1...][,exact]" followed by one row
// per recorded state.
func (r *Recorder) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	dim := 0
	if len(r.points) > 0 {
		dim = len(r.points[0].Y)
	}
	header := []string{"t"}
	for i := 0; i < dim; i++ {
		header = append(header, columnName(i, dim))
	}
	if r.Exact != nil {
		header = append(header, "exact")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range r.points {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(p.T))
		for _, v := range p.Y {
			row = append(row, formatFloat(v))
		}
		if r.Exact != nil {
			cell := ""
			if v, ok := r.Exact(p.T); ok {
				cell = formatFloat(v)
			}
			row = append(row, cell)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the trajectory to path.
func (r *Recorder) SaveCSV(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trajectory file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return r.WriteCSV(f)
}

func columnName(i, dim int) string {
	if dim == 1 {
		return "y"
	}
	return "y" + strconv.Itoa(i)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
