package report

import (
	"math"

	"github.com/born-ml/fdeint/internal/serialization"
	"github.com/born-ml/fdeint/internal/tensor"
)

// Tensors returns the trajectory as float64 tensors: "t" [N], "y" [N, dim]
// and, when Exact is set, "exact" [N] with NaN where no closed form exists.
func (r *Recorder) Tensors() (map[string]*tensor.RawTensor, error) {
	if len(r.points) == 0 {
		return nil, ErrEmpty
	}

	n, dim := len(r.points), len(r.points[0].Y)
	ts := make([]float64, n)
	ys := make([]float64, 0, n*dim)
	for i, p := range r.points {
		ts[i] = p.T
		ys = append(ys, p.Y...)
	}

	tt, err := tensor.FromFloat64(ts, tensor.Shape{n}, tensor.Float64, tensor.CPU)
	if err != nil {
		return nil, err
	}
	yt, err := tensor.FromFloat64(ys, tensor.Shape{n, dim}, tensor.Float64, tensor.CPU)
	if err != nil {
		return nil, err
	}
	out := map[string]*tensor.RawTensor{"t": tt, "y": yt}

	if r.Exact != nil {
		exact := make([]float64, n)
		for i, p := range r.points {
			exact[i] = math.NaN()
			if v, ok := r.Exact(p.T); ok {
				exact[i] = v
			}
		}
		et, err := tensor.FromFloat64(exact, tensor.Shape{n}, tensor.Float64, tensor.CPU)
		if err != nil {
			return nil, err
		}
		out["exact"] = et
	}
	return out, nil
}

// SaveSafeTensors writes Tensors to path with the given metadata.
func (r *Recorder) SaveSafeTensors(path string, metadata map[string]string) error {
	tensors, err := r.Tensors()
	if err != nil {
		return err
	}
	return serialization.WriteSafeTensors(path, tensors, metadata)
}
