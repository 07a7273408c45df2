// Package history provides the preallocated, step-indexed buffer the
// fractional schemes accumulate over.
package history

import (
	"errors"
	"fmt"

	"github.com/born-ml/fdeint/internal/tensor"
)

// Common errors.
var (
	ErrFull       = errors.New("history buffer full")
	ErrOutOfOrder = errors.New("history slot written out of order")
	ErrNilEntry   = errors.New("nil history entry")
)

// Buffer is a fixed-capacity slot array indexed by step number. Slots are
// filled strictly in order; an existing slot may be overwritten.
//
// Buffer does not copy entries. Backends never modify their inputs, so the
// stored tensors stay valid for the buffer's lifetime.
type Buffer struct {
	slots []*tensor.RawTensor
	n     int
}

// New allocates a buffer with room for capacity steps.
func New(capacity int) *Buffer {
	return &Buffer{slots: make([]*tensor.RawTensor, capacity)}
}

// Len returns the number of filled slots.
func (b *Buffer) Len() int {
	return b.n
}

// Cap returns the capacity fixed at construction.
func (b *Buffer) Cap() int {
	return len(b.slots)
}

// Append fills the next slot.
func (b *Buffer) Append(x *tensor.RawTensor) error {
	return b.Set(b.n, x)
}

// Set writes slot k. k may address a filled slot or the next free one.
func (b *Buffer) Set(k int, x *tensor.RawTensor) error {
	if x == nil {
		return fmt.Errorf("slot %d: %w", k, ErrNilEntry)
	}
	if k >= len(b.slots) {
		return fmt.Errorf("slot %d of %d: %w", k, len(b.slots), ErrFull)
	}
	if k < 0 || k > b.n {
		return fmt.Errorf("slot %d with %d filled: %w", k, b.n, ErrOutOfOrder)
	}
	b.slots[k] = x
	if k == b.n {
		b.n++
	}
	return nil
}

// At returns slot k. Panics if k is not filled.
func (b *Buffer) At(k int) *tensor.RawTensor {
	if k < 0 || k >= b.n {
		panic(fmt.Sprintf("history: slot %d out of range [0, %d)", k, b.n))
	}
	return b.slots[k]
}

// Window returns the filled slots lo..hi-1 without copying.
func (b *Buffer) Window(lo, hi int) []*tensor.RawTensor {
	if lo < 0 || hi > b.n || lo > hi {
		panic(fmt.Sprintf("history: window [%d, %d) out of range [0, %d)", lo, hi, b.n))
	}
	return b.slots[lo:hi]
}

// Stack joins slots lo..hi-1 into one tensor with a leading axis of hi-lo.
func (b *Buffer) Stack(backend tensor.Backend, lo, hi int) *tensor.RawTensor {
	return tensor.Stack(backend, b.Window(lo, hi))
}
