//go:build windows

package webgpu

import (
	"github.com/born-ml/fdeint/internal/tensor"
)

// Verify that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// native reports whether a binary op on a and other can run as a GPU kernel.
func native(a, other *tensor.RawTensor) bool {
	return a.DType() == tensor.Float32 && other.DType() == tensor.Float32 && a.Shape().Equal(other.Shape())
}

// Add performs element-wise addition on GPU.
func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !native(a, other) {
		return b.host.Add(a, other)
	}
	result, err := b.runBinaryOp(a, other, "add", addShader)
	if err != nil {
		panic("webgpu: Add: " + err.Error())
	}
	return result
}

// Sub performs element-wise subtraction on GPU.
func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !native(a, other) {
		return b.host.Sub(a, other)
	}
	result, err := b.runBinaryOp(a, other, "sub", subShader)
	if err != nil {
		panic("webgpu: Sub: " + err.Error())
	}
	return result
}

// Mul performs element-wise multiplication on GPU.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !native(a, other) {
		return b.host.Mul(a, other)
	}
	result, err := b.runBinaryOp(a, other, "mul", mulShader)
	if err != nil {
		panic("webgpu: Mul: " + err.Error())
	}
	return result
}

// MulScalar multiplies each element by scalar on GPU.
func (b *Backend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.MulScalar(x, scalar)
	}
	result, err := b.runScalarOp(x, scalar, "scalarMul", scalarMulShader)
	if err != nil {
		panic("webgpu: MulScalar: " + err.Error())
	}
	return result
}

// AddScalar adds scalar to each element on GPU.
func (b *Backend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.AddScalar(x, scalar)
	}
	result, err := b.runScalarOp(x, scalar, "scalarAdd", scalarAddShader)
	if err != nil {
		panic("webgpu: AddScalar: " + err.Error())
	}
	return result
}

// Pow raises each element to exponent on GPU.
func (b *Backend) Pow(x *tensor.RawTensor, exponent float64) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.Pow(x, exponent)
	}
	result, err := b.runScalarOp(x, exponent, "pow", powShader)
	if err != nil {
		panic("webgpu: Pow: " + err.Error())
	}
	return result
}

// SumDim runs on the host.
func (b *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.host.SumDim(x, dim, keepDim)
}

// Cat runs on the host.
func (b *Backend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.host.Cat(tensors, dim)
}

// Unsqueeze is a metadata-only change and runs on the host.
func (b *Backend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.host.Unsqueeze(x, dim)
}

// Expand runs on the host.
func (b *Backend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	return b.host.Expand(x, shape)
}

// Cast runs on the host.
func (b *Backend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return b.host.Cast(x, dtype)
}
