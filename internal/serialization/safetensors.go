package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/born-ml/fdeint/internal/tensor"
)

const metadataKey = "__metadata__"

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// WriteSafeTensors writes tensors to a SafeTensors file at path.
func WriteSafeTensors(path string, tensors map[string]*tensor.RawTensor, metadata map[string]string) (err error) {
	//nolint:gosec // G304: output path is chosen by the user
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	buf := bufio.NewWriter(file)
	if err := EncodeSafeTensors(buf, tensors, metadata); err != nil {
		return err
	}
	return buf.Flush()
}

// EncodeSafeTensors writes tensors in SafeTensors layout to w.
//
// Format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]
//
// Tensors are written in alphabetical order by name.
func EncodeSafeTensors(w io.Writer, tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header[metadataKey] = metadata
	}

	var offset int64
	for _, name := range names {
		raw := tensors[name]
		dtype, err := dtypeToSafeTensors(raw.DType())
		if err != nil {
			return fmt.Errorf("tensor %s: %w", name, err)
		}

		shape := raw.Shape()
		shape64 := make([]int64, len(shape))
		for i, dim := range shape {
			shape64[i] = int64(dim)
		}

		size := int64(raw.ByteSize())
		header[name] = SafeTensorHeader{
			DType:       dtype,
			Shape:       shape64,
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, name := range names {
		if _, err := w.Write(tensors[name].Data()); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}
	return nil
}

// ReadSafeTensors loads every tensor and the metadata from a SafeTensors
// file. Tensors are placed on the CPU device.
func ReadSafeTensors(path string) (map[string]*tensor.RawTensor, map[string]string, error) {
	//nolint:gosec // G304: input path is chosen by the user
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return DecodeSafeTensors(bufio.NewReader(file))
}

// DecodeSafeTensors reads a SafeTensors stream, validating names, dtypes
// and offsets before copying any data.
func DecodeSafeTensors(r io.Reader) (map[string]*tensor.RawTensor, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &entries); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header: %w", err)
	}

	var metadata map[string]string
	if raw, ok := entries[metadataKey]; ok {
		if err := json.Unmarshal(raw, &metadata); err != nil {
			return nil, nil, fmt.Errorf("failed to parse metadata: %w", err)
		}
		delete(entries, metadataKey)
	}

	headers := make(map[string]SafeTensorHeader, len(entries))
	metas := make([]TensorMeta, 0, len(entries))
	for name, raw := range entries {
		if err := ValidateTensorName(name); err != nil {
			return nil, nil, err
		}
		var h SafeTensorHeader
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, nil, fmt.Errorf("failed to parse tensor %s: %w", name, err)
		}
		headers[name] = h
		metas = append(metas, TensorMeta{
			Name:   name,
			Offset: h.DataOffsets[0],
			Size:   h.DataOffsets[1] - h.DataOffsets[0],
		})
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, nil, err
	}

	tensors := make(map[string]*tensor.RawTensor, len(headers))
	for name, h := range headers {
		raw, err := decodeTensor(name, h, data)
		if err != nil {
			return nil, nil, err
		}
		tensors[name] = raw
	}
	return tensors, metadata, nil
}

func decodeTensor(name string, h SafeTensorHeader, data []byte) (*tensor.RawTensor, error) {
	dtype, err := dtypeFromSafeTensors(h.DType)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}

	shape := make(tensor.Shape, len(h.Shape))
	for i, dim := range h.Shape {
		shape[i] = int(dim)
	}
	raw, err := tensor.NewRaw(shape, dtype, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}

	size := h.DataOffsets[1] - h.DataOffsets[0]
	if size != int64(raw.ByteSize()) {
		return nil, &ValidationError{
			Err:     ErrSizeMismatch,
			Tensor:  name,
			Details: fmt.Sprintf("%d bytes for shape %v of %s", size, shape, dtype),
		}
	}
	copy(raw.Data(), data[h.DataOffsets[0]:h.DataOffsets[1]])
	return raw, nil
}

// dtypeToSafeTensors converts tensor.DataType to SafeTensors dtype string.
func dtypeToSafeTensors(dt tensor.DataType) (string, error) {
	switch dt {
	case tensor.Float32:
		return "F32", nil
	case tensor.Float64:
		return "F64", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDType, dt)
	}
}

func dtypeFromSafeTensors(s string) (tensor.DataType, error) {
	switch s {
	case "F32":
		return tensor.Float32, nil
	case "F64":
		return tensor.Float64, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDType, s)
	}
}
