// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the fde solvers.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - gonum-accelerated float64 element-wise and reduction kernels
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fdeint/backend/cpu"
//	    "github.com/born-ml/fdeint/fde"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    y, err := fde.SolveMethod(f, y0, 0.5, 10, 0.1, fde.MethodGL, fde.WithBackend(backend))
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
