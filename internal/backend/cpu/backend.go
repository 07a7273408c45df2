// Package cpu implements the pure Go CPU backend. Float64 paths use gonum's
// floats kernels, float32 paths use plain loops.
package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/fdeint/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// NewForDevice creates a CPU backend whose results are tagged with device.
// Accelerator backends use it as their host-side companion for operations
// they do not run natively.
func NewForDevice(device tensor.Device) *CPUBackend {
	return &CPUBackend{device: device}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// binaryOp bundles the per-dtype kernels of an element-wise binary operation.
type binaryOp struct {
	name string
	f32  func(x, y float32) float32
	f64  func(x, y float64) float64
	// same-shape float64 fast path
	dense func(dst, s, t []float64) []float64
}

var (
	opAdd = binaryOp{
		name:  "add",
		f32:   func(x, y float32) float32 { return x + y },
		f64:   func(x, y float64) float64 { return x + y },
		dense: floats.AddTo,
	}
	opSub = binaryOp{
		name:  "sub",
		f32:   func(x, y float32) float32 { return x - y },
		f64:   func(x, y float64) float64 { return x - y },
		dense: floats.SubTo,
	}
	opMul = binaryOp{
		name:  "mul",
		f32:   func(x, y float32) float32 { return x * y },
		f64:   func(x, y float64) float64 { return x * y },
		dense: floats.MulTo,
	}
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opAdd, a, b)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opSub, a, b)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opMul, a, b)
}

func (cpu *CPUBackend) binary(op binaryOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op.name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op.name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op.name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		if needsBroadcast {
			broadcastBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, op.f32)
		} else {
			dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
			for i := range dst {
				dst[i] = op.f32(x[i], y[i])
			}
		}
	case tensor.Float64:
		if needsBroadcast {
			broadcastBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, op.f64)
		} else {
			op.dense(result.AsFloat64(), a.AsFloat64(), b.AsFloat64())
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op.name, a.DType()))
	}

	return result
}
