package solver

import (
	"github.com/born-ml/fdeint/internal/history"
	"github.com/born-ml/fdeint/internal/kernel"
	"github.com/born-ml/fdeint/internal/tensor"
)

// predictor runs the fractional Adams–Bashforth rule
//
//	y_{k+1} = y0 + (1/Γ(β)) Σ_{j=lo}^{k} b_{j,k} f(t_j, y_j),  lo = max(0, k-M)
//
// over k = 0..N-1 and returns y_N together with the f history, which the
// corrector reuses. The state is rebuilt from y0 every step.
func (r *run) predictor(opts PredictorOptions) (*tensor.RawTensor, *history.Buffer, error) {
	n := r.grid.Len()
	fh := history.New(n)
	g := r.gammaInv()

	y := r.y0
	r.emit(0, 0, y)
	for k := 0; k < n; k++ {
		if err := fh.Set(k, r.eval(k, y)); err != nil {
			return nil, nil, err
		}

		lo := 0
		if opts.Memory > 0 {
			lo = max(0, k-opts.Memory)
		}
		sum := r.accumulate(kernel.AdamsBashforth(k, lo, r.beta, r.h), fh.Window(lo, k+1))
		y = r.b.Add(r.y0, r.b.MulScalar(sum, g))

		r.step()
		r.emit(0, k+1, y)
	}
	return y, fh, nil
}
