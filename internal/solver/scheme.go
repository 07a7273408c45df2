package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Scheme selects a method together with its typed options. The set of
// implementations is closed; Solve dispatches on the concrete type.
type Scheme interface {
	Method() Method
	validate() error
}

// PredictorOptions configures the Adams–Bashforth predictor.
type PredictorOptions struct {
	// Memory keeps only the history terms j >= k-Memory at step k
	// (short memory principle), a window of Memory+1 terms. Zero means
	// the full history, so the shortest window is two terms (Memory = 1);
	// a single-term window cannot be requested.
	Memory int `mapstructure:"memory" yaml:"memory"`
}

// CorrectorOptions configures the predictor–corrector.
type CorrectorOptions struct {
	// Steps is the number of correction passes. Zero returns the
	// predictor result.
	Steps int `mapstructure:"corrector_step" yaml:"corrector_step"`
}

// ImplicitL1Options configures the L1 scheme. It has no options.
type ImplicitL1Options struct{}

// GLOptions configures the Grünwald–Letnikov scheme. It has no options.
type GLOptions struct{}

// TrapOptions configures the product trapezoidal scheme. It has no options.
type TrapOptions struct{}

// DefaultCorrectorOptions returns the corrector defaults (one pass).
func DefaultCorrectorOptions() CorrectorOptions {
	return CorrectorOptions{Steps: 1}
}

// Method implements Scheme.
func (PredictorOptions) Method() Method { return MethodPredictor }

// Method implements Scheme.
func (CorrectorOptions) Method() Method { return MethodCorrector }

// Method implements Scheme.
func (ImplicitL1Options) Method() Method { return MethodImplicitL1 }

// Method implements Scheme.
func (GLOptions) Method() Method { return MethodGL }

// Method implements Scheme.
func (TrapOptions) Method() Method { return MethodTrap }

func (o PredictorOptions) validate() error {
	if o.Memory < 0 {
		return fmt.Errorf("%w: memory %d must not be negative", ErrInvalidOption, o.Memory)
	}
	return nil
}

func (o CorrectorOptions) validate() error {
	if o.Steps < 0 {
		return fmt.Errorf("%w: corrector_step %d must not be negative", ErrInvalidOption, o.Steps)
	}
	return nil
}

func (ImplicitL1Options) validate() error { return nil }

func (GLOptions) validate() error { return nil }

func (TrapOptions) validate() error { return nil }

// DefaultScheme returns the scheme for m with default options.
func DefaultScheme(m Method) (Scheme, error) {
	return NewScheme(m, nil)
}

// NewScheme decodes loosely typed options (e.g. from a YAML run file) into
// the typed scheme for m. Keys the scheme does not recognise fail with
// ErrUnknownOption; values of the wrong type or range fail with
// ErrInvalidOption.
func NewScheme(m Method, options map[string]any) (Scheme, error) {
	var target Scheme
	switch m {
	case MethodPredictor:
		target = &PredictorOptions{}
	case MethodCorrector:
		opts := DefaultCorrectorOptions()
		target = &opts
	case MethodImplicitL1:
		target = &ImplicitL1Options{}
	case MethodGL:
		target = &GLOptions{}
	case MethodTrap:
		target = &TrapOptions{}
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidMethod, m)
	}

	if len(options) > 0 {
		var md mapstructure.Metadata
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Metadata:         &md,
			Result:           target,
		})
		if err != nil {
			return nil, fmt.Errorf("%s options: %w", m, err)
		}
		if err := decoder.Decode(options); err != nil {
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidOption, m, err)
		}
		if len(md.Unused) > 0 {
			sort.Strings(md.Unused)
			return nil, fmt.Errorf("%w for %s: %s", ErrUnknownOption, m, strings.Join(md.Unused, ", "))
		}
	}

	scheme := deref(target)
	if err := scheme.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", m, err)
	}
	return scheme, nil
}

// deref turns the decode target back into the value type Solve dispatches on.
func deref(s Scheme) Scheme {
	switch v := s.(type) {
	case *PredictorOptions:
		return *v
	case *CorrectorOptions:
		return *v
	case *ImplicitL1Options:
		return *v
	case *GLOptions:
		return *v
	case *TrapOptions:
		return *v
	}
	return s
}
