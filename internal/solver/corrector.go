package solver

import (
	"github.com/born-ml/fdeint/internal/history"
	"github.com/born-ml/fdeint/internal/kernel"
	"github.com/born-ml/fdeint/internal/tensor"
)

// corrector runs the full-memory predictor, then opts.Steps Adams–Moulton
// passes. Each pass evaluates f along its own corrected states:
//
//	y_{k+1} = y0 + (1/Γ(β)) (Σ_{j=0}^{k} a_{j,k} F^C_j + a F_k)
//
// F_k is the predictor's f history in the first pass and the current
// pass's F^C_k in later ones, so every pass after the first yields the
// same result.
func (r *run) corrector(opts CorrectorOptions) (*tensor.RawTensor, error) {
	y, predicted, err := r.predictor(PredictorOptions{})
	if err != nil || opts.Steps == 0 {
		return y, err
	}

	n := r.grid.Len()
	a := kernel.CorrectorScale(r.beta, r.h)
	g := r.gammaInv()

	for pass := 1; pass <= opts.Steps; pass++ {
		cur := history.New(n)
		if pass > 1 {
			predicted = cur
		}

		y = r.y0
		r.emit(pass, 0, y)
		for k := 0; k < n; k++ {
			if err := cur.Set(k, r.eval(k, y)); err != nil {
				return nil, err
			}

			sum := r.accumulate(kernel.AdamsMoulton(k, r.beta, r.h), cur.Window(0, k+1))
			sum = r.b.Add(sum, r.b.MulScalar(predicted.At(k), a))
			y = r.b.Add(r.y0, r.b.MulScalar(sum, g))

			r.step()
			r.emit(pass, k+1, y)
		}
	}
	return y, nil
}
