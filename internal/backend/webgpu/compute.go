//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/fdeint/internal/tensor"
)

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Auto layout (nil layout)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer and uploads initial data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with proper alignment.
// Uniform buffers require 16-byte alignment for struct fields.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}

// dispatch binds inputs, a fresh result buffer and the params uniform (in
// that binding order), runs one pass of the pipeline over numElements and
// returns the result bytes.
func (b *Backend) dispatch(pipeline *wgpu.ComputePipeline, inputs [][]byte, resultSize uint64, params []byte, numElements int) ([]byte, error) {
	entries := make([]wgpu.BindGroupEntry, 0, len(inputs)+2)
	for i, data := range inputs {
		buf := b.createBuffer(data, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		defer buf.Release()
		//nolint:gosec // G115: binding index is small and non-negative
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buf, 0, uint64(len(data))))
	}

	bufferResult := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  resultSize,
	})
	defer bufferResult.Release()

	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	//nolint:gosec // G115: binding index is small and non-negative
	next := uint32(len(inputs))
	entries = append(entries,
		wgpu.BufferBindingEntry(next, bufferResult, 0, resultSize),
		wgpu.BufferBindingEntry(next+1, bufferParams, 0, 16),
	)

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)

	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)

	// ceil(numElements / workgroupSize)
	//nolint:gosec // G115: Safe conversion, workgroup count is non-negative
	workgroups := uint32((numElements + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	return b.readBuffer(bufferResult, resultSize)
}

// runBinaryOp executes a same-shape float32 element-wise operation on GPU.
func (b *Backend) runBinaryOp(a, other *tensor.RawTensor, shaderName, shaderCode string) (*tensor.RawTensor, error) {
	if a.DType() != tensor.Float32 {
		return nil, fmt.Errorf("only float32 is supported, got %s", a.DType())
	}
	if !a.Shape().Equal(other.Shape()) {
		return nil, fmt.Errorf("shape mismatch: %v vs %v", a.Shape(), other.Shape())
	}

	pipeline := b.getOrCreatePipeline(shaderName, b.compileShader(shaderName, shaderCode))

	params := make([]byte, 16)
	//nolint:gosec // G115: Safe conversion, NumElements() returns non-negative int
	binary.LittleEndian.PutUint32(params[0:4], uint32(a.NumElements()))

	//nolint:gosec // G115: Safe conversion, ByteSize() returns non-negative int
	data, err := b.dispatch(pipeline, [][]byte{a.Data(), other.Data()}, uint64(a.ByteSize()), params, a.NumElements())
	if err != nil {
		return nil, err
	}
	return b.wrap(a.Shape(), data)
}

// runScalarOp executes a float32 element-wise operation parameterized by one
// scalar (multiply, add, power) on GPU.
func (b *Backend) runScalarOp(input *tensor.RawTensor, scalar float64, shaderName, shaderCode string) (*tensor.RawTensor, error) {
	if input.DType() != tensor.Float32 {
		return nil, fmt.Errorf("only float32 is supported, got %s", input.DType())
	}

	pipeline := b.getOrCreatePipeline(shaderName, b.compileShader(shaderName, shaderCode))

	// Params{size: u32, scalar: f32}
	params := make([]byte, 16)
	//nolint:gosec // G115: Safe conversion, NumElements() returns non-negative int
	binary.LittleEndian.PutUint32(params[0:4], uint32(input.NumElements()))
	binary.LittleEndian.PutUint32(params[4:8], math.Float32bits(float32(scalar)))

	//nolint:gosec // G115: Safe conversion, ByteSize() returns non-negative int
	data, err := b.dispatch(pipeline, [][]byte{input.Data()}, uint64(input.ByteSize()), params, input.NumElements())
	if err != nil {
		return nil, err
	}
	return b.wrap(input.Shape(), data)
}

func (b *Backend) wrap(shape tensor.Shape, data []byte) (*tensor.RawTensor, error) {
	result, err := tensor.NewRaw(shape, tensor.Float32, tensor.WebGPU)
	if err != nil {
		return nil, err
	}
	copy(result.Data(), data)
	return result, nil
}
