// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/fdeint/internal/tensor"

// RawTensor is a dense float32/float64 array. Backend operations never
// modify their inputs.
type RawTensor = tensor.RawTensor

// Shape is a tensor's dimensions, outermost first.
type Shape = tensor.Shape

// DataType is the element type of a tensor.
type DataType = tensor.DataType

// Device identifies the backend that owns a tensor.
type Device = tensor.Device

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
)

// Supported devices.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// NewRaw creates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromFloat64 creates a tensor from values, converting them to dtype.
func FromFloat64(values []float64, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.FromFloat64(values, shape, dtype, device)
}

// Scalar creates a 0-D tensor holding v.
func Scalar(v float64, dtype DataType, device Device) *RawTensor {
	return tensor.Scalar(v, dtype, device)
}

// ParseDataType maps "float32" or "float64" to a DataType.
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// BroadcastShapes returns the NumPy-style broadcast of a and b.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
