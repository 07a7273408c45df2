// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fde solves fractional differential equations
//
//	D^β y(t) = f(t, y(t)),  y(0) = y0,  0 < β <= 1
//
// where D^β is the Caputo derivative, on the uniform grid t_i = i*h.
//
// # Schemes
//
//   - predictor: fractional Adams-Bashforth, optionally with a short memory
//   - corrector: Adams-Bashforth-Moulton predictor-corrector
//   - implicitl1: L1 discretization with f evaluated at the previous state
//   - gl: Grünwald-Letnikov
//   - trap: product trapezoidal on the Riemann-Liouville integral
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fdeint/backend/cpu"
//	    "github.com/born-ml/fdeint/fde"
//	    "github.com/born-ml/fdeint/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    decay := func(_ float64, y *tensor.RawTensor) *tensor.RawTensor {
//	        return backend.MulScalar(y, -1)
//	    }
//
//	    y0 := tensor.Scalar(1, tensor.Float64, tensor.CPU)
//	    y, err := fde.Solve(decay, y0, 0.8, 5, 0.01, fde.CorrectorOptions{Steps: 2},
//	        fde.WithBackend(backend))
//	}
//
// States may have any shape and may be float32 or float64; f must return a
// tensor that broadcasts to the state. Solve returns the state at the last
// grid point. Use WithObserver to collect the full trajectory.
package fde
