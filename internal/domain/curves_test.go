package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantCurve(t *testing.T) {
	c := ConstantCurve(0.1)
	assert.Equal(t, 0.1, c.Value(0))
	assert.Equal(t, 0.1, c.Value(4.99))
}

func TestPiecewiseCurve_Step(t *testing.T) {
	pc, err := NewPiecewiseCurve([]float64{0, 1, 2}, []float64{0.01, 0.02, 0.03}, InterpolationStep)
	require.NoError(t, err)

	testCases := []struct {
		at       float64
		expected float64
		desc     string
	}{
		{-1, 0.01, "before first knot"},
		{0, 0.01, "on first knot"},
		{0.5, 0.01, "between knots holds left value"},
		{1, 0.02, "on interior knot"},
		{1.99, 0.02, "just before last knot"},
		{2, 0.03, "on last knot"},
		{10, 0.03, "after last knot"},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, pc.Value(tc.at))
		})
	}
}

func TestPiecewiseCurve_Linear(t *testing.T) {
	pc, err := NewPiecewiseCurve([]float64{0, 2}, []float64{0.0, 0.2}, InterpolationLinear)
	require.NoError(t, err)

	assert.InDelta(t, 0.05, pc.Value(0.5), 1e-15)
	assert.InDelta(t, 0.1, pc.Value(1), 1e-15)
	assert.Equal(t, 0.2, pc.Value(3))
}

func TestParameterCurves_Breakpoints(t *testing.T) {
	sigma, err := NewPiecewiseCurve([]float64{0, 1, 2.5}, []float64{0.01, 0.02, 0.03}, InterpolationStep)
	require.NoError(t, err)
	phi, err := NewPiecewiseCurve([]float64{1, 4, 6}, []float64{0, 0.001, 0.002}, InterpolationLinear)
	require.NoError(t, err)

	curves := ParameterCurves{Phi: phi, A: ConstantCurve(0.1), Sigma: sigma}
	assert.Equal(t, []float64{1, 2.5, 4}, curves.Breakpoints(0, 5))
	assert.Equal(t, []float64{4}, curves.Breakpoints(2.5, 5))
	assert.Empty(t, ConstantCurves(0, 0.1, 0.01).Breakpoints(0, 5))

	knots := sigma.Knots()
	knots[0] = 99
	assert.Equal(t, []float64{0, 1, 2.5}, sigma.Knots(), "Knots returns a copy")
}

func TestNewPiecewiseCurve_Invalid(t *testing.T) {
	_, err := NewPiecewiseCurve(nil, nil, InterpolationStep)
	assert.Error(t, err)

	_, err = NewPiecewiseCurve([]float64{0, 1}, []float64{1}, InterpolationStep)
	assert.Error(t, err)

	_, err = NewPiecewiseCurve([]float64{1, 1}, []float64{1, 2}, InterpolationStep)
	assert.ErrorContains(t, err, "strictly increasing")

	_, err = NewPiecewiseCurve([]float64{0}, []float64{math.NaN()}, InterpolationStep)
	assert.ErrorContains(t, err, "finite")

	_, err = NewPiecewiseCurve([]float64{0}, []float64{1}, "cubic")
	assert.ErrorContains(t, err, "interpolation")
}

func TestParameterCurves_Validate(t *testing.T) {
	cfg := SimulationConfig{InitialRate: 0.05, TimeStep: 0.01, Steps: 10, Paths: 1}

	assert.NoError(t, ConstantCurves(0.0001, 0.1, 0.01).Validate(cfg))
	assert.NoError(t, ConstantCurves(0, 0, 0).Validate(cfg), "zero mean reversion is handled by the H2 limit")

	missing := ConstantCurves(0, 0.1, 0.01)
	missing.Sigma = nil
	err := missing.Validate(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "parameters.sigma")

	blowsUp := ConstantCurves(0, 0.1, 0.01)
	blowsUp.A = CurveFunc(func(t float64) float64 {
		if t > 0.05 {
			return math.Inf(1)
		}
		return 0.1
	})
	err = blowsUp.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameters.a")

	err = ConstantCurves(0, 0.1, 0.01).Validate(SimulationConfig{TimeStep: 0.01, Paths: 1})
	assert.True(t, errors.Is(err, ErrConfiguration))
}
