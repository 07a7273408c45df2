// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/fdeint/internal/tensor"

// Backend defines the operations the solvers use to combine states.
// Backends handle the actual computation; implementations live in
// backend/cpu and backend/webgpu.
//
// Example:
//
//	backend := cpu.New()
//	y := backend.Add(a, backend.MulScalar(b, 0.5))
type Backend = tensor.Backend

// Stack joins tensors of identical shape along a new leading axis.
func Stack(b Backend, tensors []*RawTensor) *RawTensor {
	return tensor.Stack(b, tensors)
}
