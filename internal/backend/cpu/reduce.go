package cpu

import (
	"fmt"

	"github.com/born-ml/fdeint/internal/tensor"
)

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	x := shape [2, 3, 4]
//	y := backend.SumDim(x, -1, true)   // shape: [2, 3, 1]
//	z := backend.SumDim(x, 0, false)   // shape: [3, 4]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	// Normalize negative dimension
	if dim < 0 {
		dim = ndim + dim
	}

	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("sumdim: dimension %d out of range for %dD tensor", dim, ndim))
	}

	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, ndim-1)
		for i := 0; i < ndim; i++ {
			if i != dim {
				outShape = append(outShape, shape[i])
			}
		}
	}

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sumdim: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		sumDim(x.AsFloat32(), result.AsFloat32(), shape, dim)
	case tensor.Float64:
		sumDim(x.AsFloat64(), result.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// sumDim reduces data of the given shape along dim into result.
// The tensor is viewed as [outer, shape[dim], inner]; terms are added in
// increasing index order along dim.
func sumDim[T float](data, result []T, shape tensor.Shape, dim int) {
	outer := 1
	for _, d := range shape[:dim] {
		outer *= d
	}
	inner := 1
	for _, d := range shape[dim+1:] {
		inner *= d
	}
	n := shape[dim]

	for o := 0; o < outer; o++ {
		dst := result[o*inner : (o+1)*inner]
		for i := range dst {
			dst[i] = 0
		}
		base := o * n * inner
		for k := 0; k < n; k++ {
			row := data[base+k*inner : base+(k+1)*inner]
			for i, v := range row {
				dst[i] += v
			}
		}
	}
}
