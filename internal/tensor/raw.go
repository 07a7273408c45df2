package tensor

import (
	"fmt"
	"math"
	"unsafe"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the low-level tensor representation: a contiguous row-major
// byte buffer plus shape, dtype and device metadata.
//
// Backends never modify their inputs; every operation allocates its result.
// Solvers rely on this to keep history entries stable.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw creates a new zero-filled RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("invalid dtype: %d", dtype)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// FromFloat64 creates a tensor of the given shape and dtype from values.
// Values are converted when dtype is Float32.
func FromFloat64(values []float64, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(values))
	}

	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	raw.SetFloat64(values)
	return raw, nil
}

// Scalar creates a 0-D tensor holding v.
func Scalar(v float64, dtype DataType, device Device) *RawTensor {
	raw, err := FromFloat64([]float64{v}, Shape{}, dtype, device)
	if err != nil {
		panic(err)
	}
	return raw
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// Float64s returns a copy of the elements converted to float64.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	switch r.dtype {
	case Float32:
		for i, v := range r.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, r.AsFloat64())
	}
	return out
}

// SetFloat64 overwrites the elements from values (converted to the tensor dtype).
// Panics if len(values) differs from NumElements.
func (r *RawTensor) SetFloat64(values []float64) {
	if len(values) != r.NumElements() {
		panic(fmt.Sprintf("SetFloat64: got %d values for %d elements", len(values), r.NumElements()))
	}
	switch r.dtype {
	case Float32:
		dst := r.AsFloat32()
		for i, v := range values {
			dst[i] = float32(v)
		}
	case Float64:
		copy(r.AsFloat64(), values)
	}
}

// Item returns the value of a single-element tensor.
// Panics if the tensor holds more than one element.
func (r *RawTensor) Item() float64 {
	if r.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", r.shape))
	}
	return r.Float64s()[0]
}

// IsFinite reports whether no element is NaN or ±Inf.
func (r *RawTensor) IsFinite() bool {
	for _, v := range r.Float64s() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// String formats the tensor for logs and CLI output.
func (r *RawTensor) String() string {
	if len(r.shape) == 0 {
		return fmt.Sprintf("%g", r.Item())
	}
	return fmt.Sprintf("%v%v", r.Float64s(), []int(r.shape))
}
