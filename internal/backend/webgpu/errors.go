package webgpu

import "errors"

// ErrUnavailable is returned by New when no WebGPU adapter can be acquired,
// including on platforms this package is not built for.
var ErrUnavailable = errors.New("webgpu: not available")
