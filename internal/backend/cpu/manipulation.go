package cpu

import (
	"fmt"

	"github.com/born-ml/fdeint/internal/tensor"
)

// Cat concatenates tensors along dim. All inputs must share dtype and every
// dimension except dim.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: no tensors")
	}

	first := tensors[0]
	ndim := len(first.Shape())
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: dimension %d out of range for %dD tensor", dim, ndim))
	}

	outShape := first.Shape().Clone()
	outShape[dim] = 0
	for i, t := range tensors {
		if t.DType() != first.DType() {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, want %s", i, t.DType(), first.DType()))
		}
		if !sameExcept(t.Shape(), first.Shape(), dim) {
			panic(fmt.Sprintf("cat: tensor %d has shape %v, incompatible with %v along dim %d", i, t.Shape(), first.Shape(), dim))
		}
		outShape[dim] += t.Shape()[dim]
	}

	result, err := tensor.NewRaw(outShape, first.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	outer := 1
	for _, d := range outShape[:dim] {
		outer *= d
	}
	inner := first.DType().Size()
	for _, d := range outShape[dim+1:] {
		inner *= d
	}

	dst := result.Data()
	off := 0
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			chunk := t.Shape()[dim] * inner
			copy(dst[off:off+chunk], t.Data()[o*chunk:(o+1)*chunk])
			off += chunk
		}
	}

	return result
}

// Unsqueeze inserts a dimension of size 1 at dim (negative dim counts from the end).
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	ndim := len(x.Shape())
	if dim < 0 {
		dim = ndim + 1 + dim
	}
	if dim < 0 || dim > ndim {
		panic(fmt.Sprintf("unsqueeze: dimension %d out of range for %dD tensor", dim, ndim))
	}

	newShape := make(tensor.Shape, 0, ndim+1)
	newShape = append(newShape, x.Shape()[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, x.Shape()[dim:]...)

	result, err := tensor.NewRaw(newShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("unsqueeze: %v", err))
	}
	copy(result.Data(), x.Data())
	return result
}

// Expand broadcasts x to shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out, _, err := tensor.BroadcastShapes(x.Shape(), shape)
	if err != nil || !out.Equal(shape) {
		panic(fmt.Sprintf("expand: cannot broadcast %v to %v", x.Shape(), shape))
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("expand: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		broadcastCopy(result.AsFloat32(), x.AsFloat32(), x.Shape(), shape)
	case tensor.Float64:
		broadcastCopy(result.AsFloat64(), x.AsFloat64(), x.Shape(), shape)
	default:
		panic(fmt.Sprintf("expand: unsupported dtype %s", x.DType()))
	}
	return result
}

// Cast converts x to dtype. Casting to the same dtype returns a copy.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.FromFloat64(x.Float64s(), x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}
	return result
}

func sameExcept(a, b tensor.Shape, dim int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if i != dim && a[i] != b[i] {
			return false
		}
	}
	return true
}
