package cpu

import (
	"testing"

	"github.com/born-ml/fdeint/internal/tensor"
)

func TestCat(t *testing.T) {
	backend := newTestBackend()

	t.Run("Dim0", func(t *testing.T) {
		a := mustFromFloat64(t, []float64{1, 2}, tensor.Shape{1, 2}, tensor.Float64)
		b := mustFromFloat64(t, []float64{3, 4, 5, 6}, tensor.Shape{2, 2}, tensor.Float64)

		got := backend.Cat([]*tensor.RawTensor{a, b}, 0)
		if !got.Shape().Equal(tensor.Shape{3, 2}) {
			t.Fatalf("shape = %v, want [3 2]", got.Shape())
		}
		if !float64SliceEqual(got.Float64s(), []float64{1, 2, 3, 4, 5, 6}, 0) {
			t.Errorf("Cat = %v", got.Float64s())
		}
	})

	t.Run("Dim1", func(t *testing.T) {
		a := mustFromFloat64(t, []float64{1, 2}, tensor.Shape{2, 1}, tensor.Float32)
		b := mustFromFloat64(t, []float64{3, 4}, tensor.Shape{2, 1}, tensor.Float32)

		got := backend.Cat([]*tensor.RawTensor{a, b}, 1)
		if !got.Shape().Equal(tensor.Shape{2, 2}) {
			t.Fatalf("shape = %v, want [2 2]", got.Shape())
		}
		if !float64SliceEqual(got.Float64s(), []float64{1, 3, 2, 4}, 0) {
			t.Errorf("Cat = %v", got.Float64s())
		}
	})
}

func TestStackScalars(t *testing.T) {
	backend := newTestBackend()

	items := []*tensor.RawTensor{
		tensor.Scalar(1, tensor.Float64, tensor.CPU),
		tensor.Scalar(2, tensor.Float64, tensor.CPU),
		tensor.Scalar(3, tensor.Float64, tensor.CPU),
	}

	got := tensor.Stack(backend, items)
	if !got.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("shape = %v, want [3]", got.Shape())
	}
	if !float64SliceEqual(got.Float64s(), []float64{1, 2, 3}, 0) {
		t.Errorf("Stack = %v", got.Float64s())
	}
}

func TestUnsqueeze(t *testing.T) {
	backend := newTestBackend()
	x := mustFromFloat64(t, []float64{1, 2, 3}, tensor.Shape{3}, tensor.Float64)

	if got := backend.Unsqueeze(x, 0).Shape(); !got.Equal(tensor.Shape{1, 3}) {
		t.Errorf("Unsqueeze(0) shape = %v", got)
	}
	if got := backend.Unsqueeze(x, -1).Shape(); !got.Equal(tensor.Shape{3, 1}) {
		t.Errorf("Unsqueeze(-1) shape = %v", got)
	}
}

func TestExpand(t *testing.T) {
	backend := newTestBackend()

	s := tensor.Scalar(7, tensor.Float64, tensor.CPU)
	got := backend.Expand(s, tensor.Shape{2, 2})
	if !float64SliceEqual(got.Float64s(), []float64{7, 7, 7, 7}, 0) {
		t.Errorf("Expand scalar = %v", got.Float64s())
	}

	row := mustFromFloat64(t, []float64{1, 2}, tensor.Shape{1, 2}, tensor.Float64)
	got = backend.Expand(row, tensor.Shape{3, 2})
	if !float64SliceEqual(got.Float64s(), []float64{1, 2, 1, 2, 1, 2}, 0) {
		t.Errorf("Expand row = %v", got.Float64s())
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic expanding [3] to [2]")
		}
	}()
	backend.Expand(mustFromFloat64(t, []float64{1, 2, 3}, tensor.Shape{3}, tensor.Float64), tensor.Shape{2})
}

func TestCast(t *testing.T) {
	backend := newTestBackend()
	x := mustFromFloat64(t, []float64{0.1, 0.2}, tensor.Shape{2}, tensor.Float64)

	got := backend.Cast(x, tensor.Float32)
	if got.DType() != tensor.Float32 {
		t.Fatalf("dtype = %s, want float32", got.DType())
	}
	if !float64SliceEqual(got.Float64s(), []float64{0.1, 0.2}, 1e-7) {
		t.Errorf("Cast = %v", got.Float64s())
	}
}
