package solver

import (
	"fmt"
	"strings"
)

// Method identifies one of the fractional schemes.
type Method int

// Supported methods.
const (
	MethodPredictor Method = iota
	MethodCorrector
	MethodImplicitL1
	MethodGL
	MethodTrap
)

var methodNames = [...]string{
	MethodPredictor:  "predictor",
	MethodCorrector:  "corrector",
	MethodImplicitL1: "implicitl1",
	MethodGL:         "gl",
	MethodTrap:       "trap",
}

var methodDescriptions = [...]string{
	MethodPredictor:  "Adams-Bashforth predictor (Caputo, explicit)",
	MethodCorrector:  "Adams-Bashforth-Moulton predictor-corrector (Caputo)",
	MethodImplicitL1: "L1 scheme, f evaluated at the previous state (Caputo)",
	MethodGL:         "Grunwald-Letnikov fractional differences (Riemann-Liouville)",
	MethodTrap:       "product trapezoidal quadrature (Riemann-Liouville)",
}

// String returns the method name accepted by ParseMethod.
func (m Method) String() string {
	if !m.valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Description returns a one-line summary of the scheme.
func (m Method) Description() string {
	if !m.valid() {
		return ""
	}
	return methodDescriptions[m]
}

func (m Method) valid() bool {
	return m >= 0 && int(m) < len(methodNames)
}

// Methods returns every supported method in declaration order.
func Methods() []Method {
	out := make([]Method, len(methodNames))
	for i := range out {
		out[i] = Method(i)
	}
	return out
}

// ParseMethod maps a method name to a Method. Unknown names fail with
// ErrInvalidMethod listing the allowed set.
func ParseMethod(name string) (Method, error) {
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q: must be one of %s", ErrInvalidMethod, name, strings.Join(methodNames[:], ", "))
}
