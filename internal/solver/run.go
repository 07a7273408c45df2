package solver

import (
	"fmt"
	"math"

	"github.com/born-ml/fdeint/internal/grid"
	"github.com/born-ml/fdeint/internal/metrics"
	"github.com/born-ml/fdeint/internal/tensor"
)

// run carries the per-call state shared by every scheme.
type run struct {
	f      Func
	y0     *tensor.RawTensor
	beta   float64
	grid   *grid.Grid
	h      float64
	b      tensor.Backend
	obs    Observer
	m      *metrics.Metrics
	method string
}

// eval calls the right-hand side at grid point k and conforms the result to
// the state's dtype and shape.
func (r *run) eval(k int, y *tensor.RawTensor) *tensor.RawTensor {
	t := r.grid.At(k)
	out := r.f(t, y)
	r.m.Eval(r.method)
	if out == nil {
		panic(fmt.Sprintf("rhs returned nil at t=%g", t))
	}
	if out.DType() != r.y0.DType() {
		out = r.b.Cast(out, r.y0.DType())
	}
	if !out.Shape().Equal(r.y0.Shape()) {
		out = r.b.Expand(out, r.y0.Shape())
	}
	return out
}

// emit reports state y at grid index i to the observer.
func (r *run) emit(pass, i int, y *tensor.RawTensor) {
	if r.obs == nil {
		return
	}
	t := float64(i) * r.h
	if i < r.grid.Len() {
		t = r.grid.At(i)
	}
	r.obs(pass, i, t, y)
}

func (r *run) step() {
	r.m.Step(r.method)
}

// weights places w on the backend as a [n, 1, ..., 1] tensor that
// broadcasts against n stacked states.
func (r *run) weights(w []float64) *tensor.RawTensor {
	shape := make(tensor.Shape, r.y0.Shape().Rank())
	for i := range shape {
		shape[i] = 1
	}
	raw, err := tensor.FromFloat64(w, shape.Prepend(len(w)), r.y0.DType(), r.b.Device())
	if err != nil {
		panic(err)
	}
	return raw
}

// accumulate returns Σ_i w[i]·items[i].
func (r *run) accumulate(w []float64, items []*tensor.RawTensor) *tensor.RawTensor {
	if len(w) != len(items) {
		panic(fmt.Sprintf("accumulate: %d weights for %d terms", len(w), len(items)))
	}
	return r.accumulateStacked(w, tensor.Stack(r.b, items))
}

// accumulateStacked is accumulate over terms already stacked along axis 0.
func (r *run) accumulateStacked(w []float64, stacked *tensor.RawTensor) *tensor.RawTensor {
	return r.b.SumDim(r.b.Mul(r.weights(w), stacked), 0, false)
}

// gammaInv returns 1/Γ(β).
func (r *run) gammaInv() float64 {
	return 1 / math.Gamma(r.beta)
}
