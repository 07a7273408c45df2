package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fdeint/internal/backend/cpu"
	"github.com/born-ml/fdeint/internal/serialization"
	"github.com/born-ml/fdeint/internal/solver"
	"github.com/born-ml/fdeint/internal/tensor"
)

func TestRecorder_KeepsLastPass(t *testing.T) {
	r := NewRecorder()

	r.Observe(0, 0, 0, tensor.Scalar(1, tensor.Float64, tensor.CPU))
	r.Observe(0, 1, 0.5, tensor.Scalar(2, tensor.Float64, tensor.CPU))
	r.Observe(1, 0, 0, tensor.Scalar(3, tensor.Float64, tensor.CPU))

	require.Len(t, r.Points(), 1)
	assert.Equal(t, []float64{3}, r.Points()[0].Y)
}

func TestRecorder_WriteCSV(t *testing.T) {
	b := cpu.New()
	decay := func(_ float64, y *tensor.RawTensor) *tensor.RawTensor { return b.MulScalar(y, -1) }

	r := NewRecorder()
	r.Exact = func(t float64) (float64, bool) { return 1 - t, t < 0.5 }

	_, err := solver.Solve(decay, tensor.Scalar(1, tensor.Float64, tensor.CPU), 1, 1, 0.25,
		solver.GLOptions{}, solver.WithObserver(r.Observer()))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "t,y,exact", lines[0])
	assert.Equal(t, "0,1,1", lines[1])
	assert.Equal(t, "0.25,0.75,0.75", lines[2])
	assert.True(t, strings.HasSuffix(lines[4], ","), "no exact value past t=0.5: %q", lines[4])
}

func TestRecorder_VectorColumns(t *testing.T) {
	r := NewRecorder()
	y, err := tensor.FromFloat64([]float64{1, 2}, tensor.Shape{2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	r.Observe(0, 0, 0, y)

	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))
	assert.Equal(t, "t,y0,y1\n0,1,2\n", buf.String())
}

func TestRecorder_SaveFiles(t *testing.T) {
	r := NewRecorder()
	r.Exact = func(t float64) (float64, bool) { return t, true }
	for i := 0; i < 5; i++ {
		ti := float64(i) / 4
		r.Observe(0, i, ti, tensor.Scalar(ti*ti, tensor.Float64, tensor.CPU))
	}

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "traj.csv")
	require.NoError(t, r.SaveCSV(csvPath))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "t,y,exact\n"))

	svgPath := filepath.Join(dir, "traj.svg")
	require.NoError(t, r.SavePlot(svgPath, "square"))
	info, err := os.Stat(svgPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRecorder_PlotEmpty(t *testing.T) {
	_, err := NewRecorder().Plot("empty")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRecorder_SaveSafeTensors(t *testing.T) {
	r := NewRecorder()
	r.Exact = func(t float64) (float64, bool) { return 1, t == 0 }
	y0, err := tensor.FromFloat64([]float64{1, 2}, tensor.Shape{2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	y1, err := tensor.FromFloat64([]float64{3, 4}, tensor.Shape{2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	r.Observe(0, 0, 0, y0)
	r.Observe(0, 1, 0.1, y1)

	path := filepath.Join(t.TempDir(), "traj.safetensors")
	require.NoError(t, r.SaveSafeTensors(path, map[string]string{"method": "gl"}))

	tensors, meta, err := serialization.ReadSafeTensors(path)
	require.NoError(t, err)
	assert.Equal(t, "gl", meta["method"])
	assert.Equal(t, []float64{0, 0.1}, tensors["t"].Float64s())
	assert.Equal(t, tensor.Shape{2, 2}, tensors["y"].Shape())
	assert.Equal(t, []float64{1, 2, 3, 4}, tensors["y"].Float64s())

	exact := tensors["exact"].Float64s()
	assert.Equal(t, 1.0, exact[0])
	assert.True(t, math.IsNaN(exact[1]))
}
