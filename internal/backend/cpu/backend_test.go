package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/fdeint/internal/tensor"
)

// Helper to create test backend.
func newTestBackend() *CPUBackend {
	return New()
}

// Helper to check float64 slices are equal within epsilon.
func float64SliceEqual(a, b []float64, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func mustFromFloat64(t *testing.T, values []float64, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromFloat64(values, shape, dtype, tensor.CPU)
	if err != nil {
		t.Fatalf("FromFloat64: %v", err)
	}
	return raw
}

// TestCPUBackend_New tests backend creation.
func TestCPUBackend_New(t *testing.T) {
	backend := New()
	if backend == nil {
		t.Fatal("New() returned nil")
	}
	if backend.Name() != "CPU" {
		t.Errorf("Expected name 'CPU', got '%s'", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Expected device CPU, got %v", backend.Device())
	}

	tagged := NewForDevice(tensor.WebGPU)
	out := tagged.AddScalar(tensor.Scalar(1, tensor.Float32, tensor.WebGPU), 1)
	if out.Device() != tensor.WebGPU {
		t.Errorf("Expected result on WebGPU, got %v", out.Device())
	}
}

// TestCPUBackend_Binary tests element-wise add/sub/mul on both dtypes.
func TestCPUBackend_Binary(t *testing.T) {
	backend := newTestBackend()

	for _, dtype := range []tensor.DataType{tensor.Float32, tensor.Float64} {
		t.Run(dtype.String(), func(t *testing.T) {
			a := mustFromFloat64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, dtype)
			b := mustFromFloat64(t, []float64{10, 11, 12, 13, 14, 15}, tensor.Shape{2, 3}, dtype)

			tests := []struct {
				name string
				got  *tensor.RawTensor
				want []float64
			}{
				{"Add", backend.Add(a, b), []float64{11, 13, 15, 17, 19, 21}},
				{"Sub", backend.Sub(b, a), []float64{9, 9, 9, 9, 9, 9}},
				{"Mul", backend.Mul(a, b), []float64{10, 22, 36, 52, 70, 90}},
			}
			for _, tt := range tests {
				if !float64SliceEqual(tt.got.Float64s(), tt.want, 1e-6) {
					t.Errorf("%s = %v, want %v", tt.name, tt.got.Float64s(), tt.want)
				}
				if tt.got.DType() != dtype {
					t.Errorf("%s dtype = %s, want %s", tt.name, tt.got.DType(), dtype)
				}
			}

			// Inputs are never modified.
			if !float64SliceEqual(a.Float64s(), []float64{1, 2, 3, 4, 5, 6}, 0) {
				t.Errorf("input a modified: %v", a.Float64s())
			}
		})
	}
}

// TestCPUBackend_Broadcast covers the shapes the solvers produce:
// [n,1] weights against [n,d] stacks and scalars against vectors.
func TestCPUBackend_Broadcast(t *testing.T) {
	backend := newTestBackend()

	t.Run("ColumnTimesMatrix", func(t *testing.T) {
		w := mustFromFloat64(t, []float64{2, 3}, tensor.Shape{2, 1}, tensor.Float64)
		m := mustFromFloat64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.Float64)

		got := backend.Mul(w, m)
		if !got.Shape().Equal(tensor.Shape{2, 3}) {
			t.Fatalf("shape = %v, want [2 3]", got.Shape())
		}
		want := []float64{2, 4, 6, 12, 15, 18}
		if !float64SliceEqual(got.Float64s(), want, 1e-12) {
			t.Errorf("Mul = %v, want %v", got.Float64s(), want)
		}
	})

	t.Run("ScalarPlusVector", func(t *testing.T) {
		s := tensor.Scalar(1.5, tensor.Float32, tensor.CPU)
		v := mustFromFloat64(t, []float64{1, 2, 3}, tensor.Shape{3}, tensor.Float32)

		got := backend.Add(s, v)
		want := []float64{2.5, 3.5, 4.5}
		if !float64SliceEqual(got.Float64s(), want, 1e-6) {
			t.Errorf("Add = %v, want %v", got.Float64s(), want)
		}
	})

	t.Run("Incompatible", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for incompatible shapes")
			}
		}()
		a := mustFromFloat64(t, []float64{1, 2, 3}, tensor.Shape{3}, tensor.Float64)
		b := mustFromFloat64(t, []float64{1, 2}, tensor.Shape{2}, tensor.Float64)
		backend.Add(a, b)
	})

	t.Run("DTypeMismatch", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for dtype mismatch")
			}
		}()
		backend.Add(tensor.Scalar(1, tensor.Float32, tensor.CPU), tensor.Scalar(1, tensor.Float64, tensor.CPU))
	})
}

// TestCPUBackend_Scalar tests scalar ops and Pow.
func TestCPUBackend_Scalar(t *testing.T) {
	backend := newTestBackend()

	for _, dtype := range []tensor.DataType{tensor.Float32, tensor.Float64} {
		t.Run(dtype.String(), func(t *testing.T) {
			x := mustFromFloat64(t, []float64{1, 4, 9}, tensor.Shape{3}, dtype)

			if got := backend.MulScalar(x, -2).Float64s(); !float64SliceEqual(got, []float64{-2, -8, -18}, 1e-6) {
				t.Errorf("MulScalar = %v", got)
			}
			if got := backend.AddScalar(x, 0.5).Float64s(); !float64SliceEqual(got, []float64{1.5, 4.5, 9.5}, 1e-6) {
				t.Errorf("AddScalar = %v", got)
			}
			if got := backend.Pow(x, 0.5).Float64s(); !float64SliceEqual(got, []float64{1, 2, 3}, 1e-6) {
				t.Errorf("Pow = %v", got)
			}
			if got := backend.Pow(x, 1.5).Float64s(); !float64SliceEqual(got, []float64{1, 8, 27}, 1e-4) {
				t.Errorf("Pow(1.5) = %v", got)
			}
		})
	}
}
