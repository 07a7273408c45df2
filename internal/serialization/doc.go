// Package serialization stores tensors in the SafeTensors format so solver
// trajectories can be loaded by other tools (numpy, torch, safetensors).
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON {name: {dtype, shape, data_offsets}, "__metadata__": {...}}]
//	  [Tensor data: raw little-endian bytes]
//
// Only F32 and F64 tensors are supported.
//
// Example usage:
//
//	tensors := map[string]*tensor.RawTensor{"t": times, "y": states}
//	if err := serialization.WriteSafeTensors("run.safetensors", tensors, map[string]string{"method": "gl"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	tensors, meta, err := serialization.ReadSafeTensors("run.safetensors")
package serialization
