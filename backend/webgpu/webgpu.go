// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated solver steps.
//
// Float32 element-wise operations run as WGSL compute shaders. Everything
// else runs on a host-side CPU backend. GPU support is built on Windows;
// on other platforms New returns ErrUnavailable.
//
// Example:
//
//	var backend tensor.Backend = cpu.New()
//	if gpu, err := webgpu.New(); err == nil {
//	    defer gpu.Release()
//	    backend = gpu
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/fdeint/internal/backend/webgpu"
	"github.com/born-ml/fdeint/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// ErrUnavailable is returned by New when no WebGPU adapter can be used.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// New creates a new WebGPU backend. Call Release when done to free GPU
// resources.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    backend = gpu
//	} else {
//	    backend = cpu.New()
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
