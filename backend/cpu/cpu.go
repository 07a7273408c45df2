// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/fdeint/internal/backend/cpu"
	"github.com/born-ml/fdeint/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	y, err := fde.Solve(f, y0, 0.5, 10, 0.1, fde.CorrectorOptions{Steps: 1}, fde.WithBackend(backend))
func New() *Backend {
	return internalcpu.New()
}
