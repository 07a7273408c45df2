// Package tensor provides the array representation and the backend capability
// interface the fractional solvers are written against.
package tensor

import "fmt"

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// Valid reports whether dt is one of the supported data types.
func (dt DataType) Valid() bool {
	return dt == Float32 || dt == Float64
}

// ParseDataType maps "float32"/"float64" (also "f32"/"f64") to a DataType.
func ParseDataType(name string) (DataType, error) {
	switch name {
	case "float32", "f32":
		return Float32, nil
	case "float64", "f64", "":
		return Float64, nil
	default:
		return 0, fmt.Errorf("unsupported dtype %q (want float32 or float64)", name)
	}
}
