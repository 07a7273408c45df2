package solver

import (
	"github.com/born-ml/fdeint/internal/history"
	"github.com/born-ml/fdeint/internal/kernel"
	"github.com/born-ml/fdeint/internal/tensor"
)

// implicitL1 steps the L1 discretization of the Caputo derivative with f
// taken at the previous state:
//
//	y_k = y_{k-1} + u_h f(t_k, y_{k-1}) - Σ_{j=0}^{k-3} R_{k,j} (y_{j+1} - y_j)
//
// for k = 1..N-1 and returns y_{N-1}.
func (r *run) implicitL1() (*tensor.RawTensor, error) {
	n := r.grid.Len()
	ys := history.New(n)
	if err := ys.Append(r.y0); err != nil {
		return nil, err
	}
	u := kernel.L1Scale(r.beta, r.h)

	y := r.y0
	r.emit(0, 0, y)
	for k := 1; k < n; k++ {
		next := r.b.Add(y, r.b.MulScalar(r.eval(k, y), u))

		if w := kernel.L1(k, r.beta); len(w) > 0 {
			// increments y_{j+1} - y_j for j = 0..k-3
			diff := r.b.Sub(ys.Stack(r.b, 1, k-1), ys.Stack(r.b, 0, k-2))
			next = r.b.Sub(next, r.accumulateStacked(w, diff))
		}

		y = next
		if err := ys.Append(y); err != nil {
			return nil, err
		}
		r.step()
		r.emit(0, k, y)
	}
	return y, nil
}
