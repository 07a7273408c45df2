package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/fdeint/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := cpu.like("mulScalar", x)

	switch x.DType() {
	case tensor.Float32:
		dst, src, s := result.AsFloat32(), x.AsFloat32(), float32(scalar)
		for i, v := range src {
			dst[i] = v * s
		}
	case tensor.Float64:
		floats.ScaleTo(result.AsFloat64(), scalar, x.AsFloat64())
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := cpu.like("addScalar", x)

	switch x.DType() {
	case tensor.Float32:
		dst, src, s := result.AsFloat32(), x.AsFloat32(), float32(scalar)
		for i, v := range src {
			dst[i] = v + s
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		copy(dst, x.AsFloat64())
		floats.AddConst(scalar, dst)
	default:
		panic(fmt.Sprintf("addScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// Pow raises each element to exponent. Non-integer exponents of negative
// elements yield NaN, as math.Pow does.
func (cpu *CPUBackend) Pow(x *tensor.RawTensor, exponent float64) *tensor.RawTensor {
	result := cpu.like("pow", x)

	switch x.DType() {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range x.AsFloat32() {
			dst[i] = float32(math.Pow(float64(v), exponent))
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		for i, v := range x.AsFloat64() {
			dst[i] = math.Pow(v, exponent)
		}
	default:
		panic(fmt.Sprintf("pow: unsupported dtype %v", x.DType()))
	}

	return result
}

// like allocates a zeroed result with x's shape and dtype on this backend's device.
func (cpu *CPUBackend) like(op string, x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}
