package solver

import (
	"math"

	"github.com/born-ml/fdeint/internal/history"
	"github.com/born-ml/fdeint/internal/kernel"
	"github.com/born-ml/fdeint/internal/tensor"
)

// grunwaldLetnikov steps
//
//	y_k = h^β f(t_k, y_{k-1}) - Σ_{j=1}^{k} c_j y_{k-j}
//
// for k = 1..N-1 with the c_j table built up front, and returns y_{N-1}.
func (r *run) grunwaldLetnikov() (*tensor.RawTensor, error) {
	n := r.grid.Len()
	c := kernel.GrunwaldLetnikov(n, r.beta)
	hb := math.Pow(r.h, r.beta)

	ys := history.New(n)
	if err := ys.Append(r.y0); err != nil {
		return nil, err
	}

	y := r.y0
	r.emit(0, 0, y)
	w := make([]float64, 0, n)
	for k := 1; k < n; k++ {
		// slot i = k-j carries c_j
		w = w[:k]
		for i := range w {
			w[i] = c[k-i]
		}

		y = r.b.Sub(r.b.MulScalar(r.eval(k, y), hb), r.accumulate(w, ys.Window(0, k)))
		if err := ys.Append(y); err != nil {
			return nil, err
		}
		r.step()
		r.emit(0, k, y)
	}
	return y, nil
}
