// Package problem provides named test equations for the CLI and examples.
package problem

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/born-ml/fdeint/internal/solver"
	"github.com/born-ml/fdeint/internal/tensor"
)

// ErrUnknownProblem is returned by Lookup for unregistered names.
var ErrUnknownProblem = errors.New("unknown problem")

// Problem is a right-hand side with default solve parameters and, where
// known, a closed-form solution.
type Problem struct {
	Name        string
	Description string

	// Defaults used when a run does not override them.
	Order    float64
	Terminal float64
	Step     float64
	Initial  float64

	// RHS builds f for the given backend and fractional order.
	RHS func(b tensor.Backend, order float64) solver.Func

	// Exact returns y(t) for the initial value y0, or false when no closed
	// form is known for order.
	Exact func(t, order, y0 float64) (float64, bool)
}

var registry = map[string]Problem{
	"polynomial": {
		Name:        "polynomial",
		Description: "D^b y = 2 t^(2-b)/G(3-b) - t^(1-b)/G(2-b) - y + t^2 - t, exact y = t^2 - t",
		Order:       0.5,
		Terminal:    10,
		Step:        0.1,
		Initial:     0,
		RHS:         polynomial,
		Exact: func(t, _, _ float64) (float64, bool) {
			return t*t - t, true
		},
	},
	"relaxation": {
		Name:        "relaxation",
		Description: "D^b y = -y, exact y = y0 exp(-t) for b = 1",
		Order:       1,
		Terminal:    1,
		Step:        0.01,
		Initial:     1,
		RHS: func(b tensor.Backend, _ float64) solver.Func {
			return func(_ float64, y *tensor.RawTensor) *tensor.RawTensor {
				return b.MulScalar(y, -1)
			}
		},
		Exact: func(t, order, y0 float64) (float64, bool) {
			if order != 1 {
				return 0, false
			}
			return y0 * math.Exp(-t), true
		},
	},
	"logistic": {
		Name:        "logistic",
		Description: "D^b y = y (1 - y), exact logistic curve for b = 1",
		Order:       0.8,
		Terminal:    2,
		Step:        0.05,
		Initial:     0.1,
		RHS: func(b tensor.Backend, _ float64) solver.Func {
			return func(_ float64, y *tensor.RawTensor) *tensor.RawTensor {
				return b.Sub(y, b.Pow(y, 2))
			}
		},
		Exact: func(t, order, y0 float64) (float64, bool) {
			if order != 1 || y0 == 0 {
				return 0, false
			}
			return 1 / (1 + (1-y0)/y0*math.Exp(-t)), true
		},
	},
}

// polynomial is forced so that y = t² - t solves the Caputo equation for
// any order.
func polynomial(b tensor.Backend, order float64) solver.Func {
	c2 := math.Gamma(3) / math.Gamma(3-order)
	c1 := math.Gamma(2) / math.Gamma(2-order)
	return func(t float64, y *tensor.RawTensor) *tensor.RawTensor {
		forcing := c2*math.Pow(t, 2-order) - c1*math.Pow(t, 1-order) + t*t - t
		return b.AddScalar(b.MulScalar(y, -1), forcing)
	}
}

// Lookup returns the problem registered under name.
func Lookup(name string) (Problem, error) {
	p, ok := registry[name]
	if !ok {
		return Problem{}, fmt.Errorf("%w %q: must be one of %s", ErrUnknownProblem, name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the registered problem names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
