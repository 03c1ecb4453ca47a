package domain

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Curve is a deterministic function of simulation time (years).
type Curve interface {
	Value(t float64) float64
}

// Breakpointer is implemented by curves that are only piecewise smooth. Knots
// returns the times where the curve or its slope may jump.
type Breakpointer interface {
	Knots() []float64
}

// ConstantCurve returns the same value at every time.
type ConstantCurve float64

func (c ConstantCurve) Value(float64) float64 { return float64(c) }

// CurveFunc adapts an ordinary function to a Curve.
type CurveFunc func(t float64) float64

func (f CurveFunc) Value(t float64) float64 { return f(t) }

// Interpolation selects how a PiecewiseCurve fills the gaps between knots.
type Interpolation string

const (
	InterpolationStep   Interpolation = "step"
	InterpolationLinear Interpolation = "linear"
)

// PiecewiseCurve is defined by knots sorted by time. Outside the knot range the
// nearest knot value is used.
type PiecewiseCurve struct {
	times  []float64
	values []float64
	linear bool
}

// NewPiecewiseCurve validates the knots and builds the curve.
func NewPiecewiseCurve(times, values []float64, interp Interpolation) (*PiecewiseCurve, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("at least one knot is required")
	}
	if len(times) != len(values) {
		return nil, fmt.Errorf("%d knot times but %d values", len(times), len(values))
	}
	if !isFinite(times) || !isFinite(values) {
		return nil, fmt.Errorf("knots must be finite")
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("knot times must be strictly increasing (%g after %g)", times[i], times[i-1])
		}
	}

	var linear bool
	switch interp {
	case "", InterpolationStep:
	case InterpolationLinear:
		linear = true
	default:
		return nil, fmt.Errorf("interpolation must be 'step' or 'linear', got %q", interp)
	}

	return &PiecewiseCurve{
		times:  append([]float64(nil), times...),
		values: append([]float64(nil), values...),
		linear: linear,
	}, nil
}

// Knots returns a copy of the knot times.
func (pc *PiecewiseCurve) Knots() []float64 {
	return append([]float64(nil), pc.times...)
}

func (pc *PiecewiseCurve) Value(t float64) float64 {
	n := len(pc.times)
	i := sort.SearchFloat64s(pc.times, t)
	switch {
	case i < n && pc.times[i] == t:
		return pc.values[i]
	case i == 0:
		return pc.values[0]
	case i == n:
		return pc.values[n-1]
	case !pc.linear:
		return pc.values[i-1]
	}
	w := (t - pc.times[i-1]) / (pc.times[i] - pc.times[i-1])
	return pc.values[i-1] + w*(pc.values[i]-pc.values[i-1])
}

// ParameterCurves bundles the drift source phi, the mean-reversion speed a and
// the volatility sigma of the Hull-White short-rate SDE
//
//	dr = (phi(t) - a(t) r) dt + sigma(t) dW.
type ParameterCurves struct {
	Phi   Curve
	A     Curve
	Sigma Curve
}

// ConstantCurves builds ParameterCurves from three constants.
func ConstantCurves(phi, a, sigma float64) ParameterCurves {
	return ParameterCurves{
		Phi:   ConstantCurve(phi),
		A:     ConstantCurve(a),
		Sigma: ConstantCurve(sigma),
	}
}

// Breakpoints returns the sorted, distinct knot times of all three curves
// that lie strictly inside (from, to).
func (pc ParameterCurves) Breakpoints(from, to float64) []float64 {
	var out []float64
	for _, c := range []Curve{pc.Phi, pc.A, pc.Sigma} {
		bp, ok := c.(Breakpointer)
		if !ok {
			continue
		}
		for _, k := range bp.Knots() {
			if k > from && k < to {
				out = append(out, k)
			}
		}
	}
	sort.Float64s(out)
	uniq := out[:0]
	for i, k := range out {
		if i == 0 || k != out[i-1] {
			uniq = append(uniq, k)
		}
	}
	return uniq
}

// Validate samples every curve on the simulation grid and rejects missing
// curves or non-finite values. A zero mean-reversion speed is legal.
func (pc ParameterCurves) Validate(cfg SimulationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	curves := []struct {
		name  string
		curve Curve
	}{
		{"parameters.phi", pc.Phi},
		{"parameters.a", pc.A},
		{"parameters.sigma", pc.Sigma},
	}

	grid := floats.Span(make([]float64, cfg.Steps+1), 0, cfg.Maturity())
	values := make([]float64, len(grid))
	for _, c := range curves {
		if c.curve == nil {
			return NewConfigurationError(c.name, "curve is required")
		}
		for i, t := range grid {
			values[i] = c.curve.Value(t)
		}
		if !isFinite(values) {
			return NewConfigurationError(c.name, "curve is not finite on [0, %g]", cfg.Maturity())
		}
	}
	return nil
}

func isFinite(xs []float64) bool {
	if floats.HasNaN(xs) {
		return false
	}
	for _, x := range xs {
		if math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
