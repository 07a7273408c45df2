// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the array type and backend interface the fde
// solvers operate on.
//
// # Overview
//
// A RawTensor is a contiguous row-major buffer of float32 or float64 values
// tagged with the device that owns it. States passed to the solvers may have
// any shape; the solvers only combine them through a Backend.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fdeint/backend/cpu"
//	    "github.com/born-ml/fdeint/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    y0, _ := tensor.FromFloat64([]float64{1, 2}, tensor.Shape{2}, tensor.Float64, tensor.CPU)
//	    y := backend.MulScalar(y0, -1)
//	    fmt.Println(y.Float64s()) // [-1 -2]
//	}
//
// # Device Support
//
//   - CPU: pure Go implementation
//   - WebGPU: zero-CGO GPU compute for float32 element-wise operations (Windows)
//
// # Broadcasting
//
// Binary operations follow NumPy broadcasting rules:
//
//	a, _ := tensor.FromFloat64(make([]float64, 3), tensor.Shape{3, 1}, tensor.Float64, tensor.CPU)
//	b, _ := tensor.FromFloat64(make([]float64, 12), tensor.Shape{3, 4}, tensor.Float64, tensor.CPU)
//	c := backend.Add(a, b) // (3, 4)
package tensor
