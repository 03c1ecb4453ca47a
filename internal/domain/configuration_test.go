package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCurveSpec_UnmarshalYAML(t *testing.T) {
	doc := `
phi: 0.0001
a:
  constant: 0.1
sigma:
  interpolation: linear
  knots:
    - {time: 0, value: 0.01}
    - {time: 5, value: 0.02}
`
	var ps ParameterSettings
	require.NoError(t, yaml.Unmarshal([]byte(doc), &ps))

	require.NotNil(t, ps.Phi.Constant)
	assert.Equal(t, "0.0001", ps.Phi.Constant.String())
	require.NotNil(t, ps.A.Constant)
	assert.Equal(t, "0.1", ps.A.Constant.String())
	assert.Len(t, ps.Sigma.Knots, 2)
	assert.Equal(t, InterpolationLinear, ps.Sigma.Interpolation)

	curves, err := ps.Curves()
	require.NoError(t, err)
	assert.Equal(t, 0.0001, curves.Phi.Value(3))
	assert.Equal(t, 0.1, curves.A.Value(3))
	assert.InDelta(t, 0.015, curves.Sigma.Value(2.5), 1e-15)
}

func TestCurveSpec_UnmarshalYAML_BadScalar(t *testing.T) {
	var ps ParameterSettings
	err := yaml.Unmarshal([]byte("phi: fast\n"), &ps)
	assert.ErrorContains(t, err, "curve constant")
}

func TestCurveSpec_Curve_Errors(t *testing.T) {
	_, err := CurveSpec{}.Curve()
	assert.ErrorContains(t, err, "required")

	both := ConstantSpec(0.1)
	both.Knots = []CurveKnot{{}}
	_, err = both.Curve()
	assert.ErrorContains(t, err, "not both")

	_, err = ParameterSettings{Phi: ConstantSpec(0), A: CurveSpec{}, Sigma: ConstantSpec(0)}.Curves()
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "parameters.a", ce.Field)
}

func TestSimulationConfig_Validate(t *testing.T) {
	valid := SimulationConfig{InitialRate: 0.05, TimeStep: 0.01, Steps: 500, Paths: 100}
	require.NoError(t, valid.Validate())
	assert.InDelta(t, 5.0, valid.Maturity(), 1e-12)

	testCases := []struct {
		desc   string
		mutate func(*SimulationConfig)
		field  string
	}{
		{"zero time step", func(c *SimulationConfig) { c.TimeStep = 0 }, "simulation.time_step"},
		{"negative time step", func(c *SimulationConfig) { c.TimeStep = -0.01 }, "simulation.time_step"},
		{"NaN time step", func(c *SimulationConfig) { c.TimeStep = math.NaN() }, "simulation.time_step"},
		{"zero steps", func(c *SimulationConfig) { c.Steps = 0 }, "simulation.steps"},
		{"zero paths", func(c *SimulationConfig) { c.Paths = 0 }, "simulation.paths"},
		{"negative workers", func(c *SimulationConfig) { c.Workers = -1 }, "simulation.workers"},
		{"infinite initial rate", func(c *SimulationConfig) { c.InitialRate = math.Inf(1) }, "simulation.initial_rate"},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
			var ce *ConfigurationError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.field, ce.Field)
		})
	}
}

func TestSimulationConfig_NegativeRateAllowed(t *testing.T) {
	cfg := SimulationConfig{InitialRate: -0.005, TimeStep: 0.01, Steps: 1, Paths: 1}
	assert.NoError(t, cfg.Validate())
}

func TestAnalyticConfig_Validate(t *testing.T) {
	sim := SimulationConfig{InitialRate: 0.05, TimeStep: 0.01, Steps: 500, Paths: 100}

	assert.NoError(t, AnalyticConfig{SpotRate: SpotRateSimulated}.Validate(sim))
	assert.NoError(t, AnalyticConfig{SpotRate: SpotRateDeterministic}.Validate(sim))
	assert.NoError(t, AnalyticConfig{ValuationTime: 5, SpotRate: SpotRateSimulated}.Validate(sim))

	assert.Error(t, AnalyticConfig{ValuationTime: 5.5, SpotRate: SpotRateSimulated}.Validate(sim))
	assert.Error(t, AnalyticConfig{ValuationTime: -1, SpotRate: SpotRateSimulated}.Validate(sim))
	assert.Error(t, AnalyticConfig{ValuationTime: 1, SpotRate: SpotRateDeterministic}.Validate(sim))
	assert.Error(t, AnalyticConfig{SpotRate: "guess"}.Validate(sim))
	assert.Error(t, AnalyticConfig{SpotRate: SpotRateSimulated, QuadratureNodes: -3}.Validate(sim))
}

func TestConfiguration_Conversions(t *testing.T) {
	cfg := &Configuration{
		Simulation: SimulationSettings{Steps: 10, Paths: 5, Seed: 7, Workers: 2},
	}
	cfg.Simulation.InitialRate = decimal.NewFromFloat(0.05)
	cfg.Simulation.TimeStep = decimal.NewFromFloat(0.5)

	sim := cfg.SimulationConfig()
	assert.Equal(t, 0.05, sim.InitialRate)
	assert.Equal(t, 0.5, sim.TimeStep)
	assert.Equal(t, uint64(7), sim.Seed)
	assert.Equal(t, 2, sim.Workers)
	assert.Equal(t, 5.0, sim.Maturity())

	assert.Equal(t, SpotRateSimulated, cfg.AnalyticConfig().SpotRate, "empty mode defaults to simulated")
}

type rowRecorder struct {
	rows [][2]float64
}

func (r *rowRecorder) WriteRow(time, rate float64) error {
	r.rows = append(r.rows, [2]float64{time, rate})
	return nil
}

type failingSink struct{}

func (failingSink) WriteRow(float64, float64) error { return errors.New("disk full") }

func TestPathSample_Export(t *testing.T) {
	ps := PathSample{{0, 0.05}, {0.5, 0.06}, {1, 0.04}}

	rec := &rowRecorder{}
	require.NoError(t, ps.Export(rec))
	assert.Equal(t, [][2]float64{{0, 0.05}, {0.5, 0.06}, {1, 0.04}}, rec.rows)

	assert.EqualError(t, ps.Export(failingSink{}), "disk full")
	assert.InDelta(t, (0.06+0.04)*0.5, ps.IntegratedRate(0.5), 1e-15)
	assert.Zero(t, PathSample{{0, 0.05}}.IntegratedRate(0.5))
}

func TestPricingComparison_Difference(t *testing.T) {
	pc := &PricingComparison{
		Numerical: MonteCarloResult{Price: 0.78, StandardError: 0.001},
		Analytic:  AnalyticResult{Price: 0.779},
	}
	assert.InDelta(t, 0.001, pc.Difference(), 1e-12)
	assert.InDelta(t, 1.0, pc.StandardErrors(), 1e-9)

	pc.Numerical.StandardError = 0
	assert.Zero(t, pc.StandardErrors())
}

func TestRandomSourceError(t *testing.T) {
	cause := errors.New("entropy exhausted")
	err := error(&RandomSourceError{Path: 3, Step: 7, Err: cause})

	assert.True(t, errors.Is(err, ErrRandomSource))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "random source failed on path 3 at step 7: entropy exhausted", err.Error())

	spot := &RandomSourceError{Path: -1, Step: 0}
	assert.True(t, errors.Is(spot, ErrRandomSource))
	assert.Contains(t, spot.Error(), "at step 0")
}
