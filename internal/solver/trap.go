package solver

import (
	"math"

	"github.com/born-ml/fdeint/internal/history"
	"github.com/born-ml/fdeint/internal/kernel"
	"github.com/born-ml/fdeint/internal/tensor"
)

// productTrapezoidal steps
//
//	y_k = Γ(2-β) h^β f(t_k, y_{k-1}) - Σ_{j=0}^{k-1} RL(k, j, β) y_j
//
// for k = 1..N-1 and returns y_{N-1}.
func (r *run) productTrapezoidal() (*tensor.RawTensor, error) {
	n := r.grid.Len()
	scale := math.Gamma(2-r.beta) * math.Pow(r.h, r.beta)

	ys := history.New(n)
	if err := ys.Append(r.y0); err != nil {
		return nil, err
	}

	y := r.y0
	r.emit(0, 0, y)
	for k := 1; k < n; k++ {
		y = r.b.Sub(r.b.MulScalar(r.eval(k, y), scale), r.accumulate(kernel.RLCoeffs(k, r.beta), ys.Window(0, k)))
		if err := ys.Append(y); err != nil {
			return nil, err
		}
		r.step()
		r.emit(0, k, y)
	}
	return y, nil
}
