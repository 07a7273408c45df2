//go:build !windows

// Package webgpu implements the WebGPU backend for GPU-accelerated tensor operations.
// GPU support is built on windows only; elsewhere New reports ErrUnavailable.
package webgpu

import (
	"github.com/born-ml/fdeint/internal/backend/cpu"
)

// Backend is a placeholder so callers compile on every platform.
type Backend struct {
	*cpu.CPUBackend
}

// New always fails with ErrUnavailable on this platform.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports false on this platform.
func IsAvailable() bool {
	return false
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Release is a no-op on this platform.
func (b *Backend) Release() {}
