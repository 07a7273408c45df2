package tensor

// Backend is the numeric capability set the solvers depend on. Solvers never
// reach for a concrete array library; everything goes through this interface.
//
// Implementations:
//   - CPU: pure Go, float32/float64, gonum fast paths for float64
//   - WebGPU: float32 element-wise kernels on the GPU (windows builds)
//
// Operations never modify their inputs. Shape or dtype mismatches are
// programmer errors and panic, prefixed with the backend and op name.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	AddScalar(x *RawTensor, scalar float64) *RawTensor

	// Pow raises every element to a (possibly non-integer) exponent.
	Pow(x *RawTensor, exponent float64) *RawTensor

	// Reduction along one axis.
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor

	// Manipulation operations
	Cat(tensors []*RawTensor, dim int) *RawTensor // concatenate along dimension
	Unsqueeze(x *RawTensor, dim int) *RawTensor   // add dimension of size 1
	Expand(x *RawTensor, shape Shape) *RawTensor  // broadcast to shape

	// Precision placement.
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata
	Name() string
	Device() Device
}

// Stack joins tensors of identical shape along a new leading axis.
func Stack(b Backend, tensors []*RawTensor) *RawTensor {
	expanded := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		expanded[i] = b.Unsqueeze(t, 0)
	}
	return b.Cat(expanded, 0)
}
