package cpu

import (
	"github.com/born-ml/fdeint/internal/tensor"
)

type float interface {
	~float32 | ~float64
}

// broadcastBinary computes dst[i] = op(a[ia], b[ib]) where ia and ib are the
// broadcast source positions of output index i.
func broadcastBinary[T float](dst, a, b []T, aShape, bShape, outShape tensor.Shape, op func(x, y T) T) {
	outStrides := outShape.ComputeStrides()
	aStrides := tensor.BroadcastStrides(aShape, outShape)
	bStrides := tensor.BroadcastStrides(bShape, outShape)

	for i := range dst {
		dst[i] = op(a[sourceIndex(i, outStrides, aStrides)], b[sourceIndex(i, outStrides, bStrides)])
	}
}

// broadcastCopy expands src (shape inShape) into dst (shape outShape).
func broadcastCopy[T float](dst, src []T, inShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	inStrides := tensor.BroadcastStrides(inShape, outShape)

	for i := range dst {
		dst[i] = src[sourceIndex(i, outStrides, inStrides)]
	}
}

// sourceIndex maps a flat output index to the flat index in a source whose
// broadcast-adjusted strides are inStrides.
func sourceIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for d, s := range outStrides {
		coord := outIdx / s
		outIdx %= s
		flatIdx += coord * inStrides[d]
	}
	return flatIdx
}
