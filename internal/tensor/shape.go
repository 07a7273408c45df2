package tensor

import "fmt"

// Shape represents the dimensions of a tensor. An empty Shape is a scalar.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Prepend returns a new shape with dim inserted in front, e.g. the shape of
// n stacked tensors of shape s.
func (s Shape) Prepend(dim int) Shape {
	out := make(Shape, 0, len(s)+1)
	out = append(out, dim)
	return append(out, s...)
}

// ComputeStrides calculates row-major strides for the shape.
// stride[i] is the product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Shapes are compared right to left; two dimensions are compatible when
// they are equal or one of them is 1, and missing dimensions count as 1.
// It returns the broadcast shape and whether any broadcasting is needed.
//
//	(3, 1) + (3, 5) → (3, 5), true
//	()     + (4,)   → (4,), true
//	(3, 4) + (3, 5) → error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	n := max(len(a), len(b))
	result := make(Shape, n)
	needsBroadcast := len(a) != len(b)

	for i := 0; i < n; i++ {
		aDim, bDim := 1, 1
		if idx := len(a) - 1 - i; idx >= 0 {
			aDim = a[idx]
		}
		if idx := len(b) - 1 - i; idx >= 0 {
			bDim = b[idx]
		}

		switch {
		case aDim == bDim:
			result[n-1-i] = aDim
		case aDim == 1:
			result[n-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[n-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, n-1-i, aDim, bDim)
		}
	}

	return result, needsBroadcast, nil
}

// BroadcastStrides returns strides for reading a tensor of shape in as if it
// had shape out. Broadcast and padded dimensions get stride 0.
func BroadcastStrides(in, out Shape) []int {
	strides := make([]int, len(out))
	offset := len(out) - len(in)
	orig := in.ComputeStrides()

	for i := range out {
		idx := i - offset
		if idx < 0 || in[idx] == 1 {
			continue
		}
		strides[i] = orig[idx]
	}
	return strides
}
