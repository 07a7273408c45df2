package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ErrEmpty is returned when plotting a recorder with no points.
var ErrEmpty = errors.New("no trajectory recorded")

// Plot builds a line plot of every state component over time, plus the
// exact solution when known.
func (r *Recorder) Plot(title string) (*plot.Plot, error) {
	if len(r.points) == 0 {
		return nil, ErrEmpty
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "y"

	dim := len(r.points[0].Y)
	lines := make([]any, 0, 2*(dim+1))
	for i := 0; i < dim; i++ {
		xys := make(plotter.XYs, len(r.points))
		for k, pt := range r.points {
			xys[k].X = pt.T
			xys[k].Y = pt.Y[i]
		}
		lines = append(lines, columnName(i, dim), xys)
	}

	if r.Exact != nil {
		var xys plotter.XYs
		for _, pt := range r.points {
			if v, ok := r.Exact(pt.T); ok {
				xys = append(xys, plotter.XY{X: pt.T, Y: v})
			}
		}
		if len(xys) > 0 {
			lines = append(lines, "exact", xys)
		}
	}

	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, fmt.Errorf("failed to add lines: %w", err)
	}
	return p, nil
}

// SavePlot renders the plot to path. The format follows the extension
// (.png, .svg, .pdf, ...).
func (r *Recorder) SavePlot(path, title string) error {
	p, err := r.Plot(title)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
