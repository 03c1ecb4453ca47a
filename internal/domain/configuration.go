package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SpotRateMode selects how the analytic price obtains r(t).
type SpotRateMode string

const (
	// SpotRateSimulated runs one fresh path of round(t/dt) steps on the shared
	// stream. At t = 0 no variate is drawn and r(0) = R0.
	SpotRateSimulated SpotRateMode = "simulated"
	// SpotRateDeterministic uses R0 and is only defined at t = 0.
	SpotRateDeterministic SpotRateMode = "deterministic"
)

// Configuration is the file representation of a pricing run.
type Configuration struct {
	Simulation SimulationSettings `yaml:"simulation" json:"simulation"`
	Parameters ParameterSettings  `yaml:"parameters" json:"parameters"`
	Analytic   AnalyticSettings   `yaml:"analytic" json:"analytic"`
	Output     OutputSettings     `yaml:"output,omitempty" json:"output,omitempty"`
}

// SimulationSettings holds the Monte Carlo grid and sample size.
type SimulationSettings struct {
	InitialRate decimal.Decimal `yaml:"initial_rate" json:"initial_rate"` // R0, per year
	TimeStep    decimal.Decimal `yaml:"time_step" json:"time_step"`       // dt, years
	Steps       int             `yaml:"steps" json:"steps"`               // T_max; maturity = steps * dt
	Paths       int             `yaml:"paths" json:"paths"`
	Seed        uint64          `yaml:"seed,omitempty" json:"seed,omitempty"` // 0 picks a fresh seed
	Workers     int             `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// ParameterSettings describes the three Hull-White parameter curves.
type ParameterSettings struct {
	Phi   CurveSpec `yaml:"phi" json:"phi"`
	A     CurveSpec `yaml:"a" json:"a"`
	Sigma CurveSpec `yaml:"sigma" json:"sigma"`
}

// CurveSpec is either a constant or a list of knots.
type CurveSpec struct {
	Constant      *decimal.Decimal `yaml:"constant,omitempty" json:"constant,omitempty"`
	Knots         []CurveKnot      `yaml:"knots,omitempty" json:"knots,omitempty"`
	Interpolation Interpolation    `yaml:"interpolation,omitempty" json:"interpolation,omitempty"`
}

// CurveKnot is one (time, value) point of a piecewise curve.
type CurveKnot struct {
	Time  decimal.Decimal `yaml:"time" json:"time"`
	Value decimal.Decimal `yaml:"value" json:"value"`
}

// AnalyticSettings configures the closed-form solver.
type AnalyticSettings struct {
	ValuationTime   decimal.Decimal `yaml:"valuation_time" json:"valuation_time"`
	SpotRate        SpotRateMode    `yaml:"spot_rate,omitempty" json:"spot_rate,omitempty"`
	QuadratureNodes int             `yaml:"quadrature_nodes,omitempty" json:"quadrature_nodes,omitempty"`
}

// OutputSettings configures reporting.
type OutputSettings struct {
	Format   string `yaml:"format,omitempty" json:"format,omitempty"`
	PathFile string `yaml:"path_file,omitempty" json:"path_file,omitempty"`
}

// ConstantSpec is shorthand for a constant CurveSpec.
func ConstantSpec(v float64) CurveSpec {
	d := decimal.NewFromFloat(v)
	return CurveSpec{Constant: &d}
}

// UnmarshalYAML accepts a bare number as a constant curve in addition to the
// mapping form.
func (cs *CurveSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		v, err := decimal.NewFromString(value.Value)
		if err != nil {
			return fmt.Errorf("curve constant %q: %w", value.Value, err)
		}
		*cs = CurveSpec{Constant: &v}
		return nil
	}

	type plain CurveSpec
	var aux plain
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*cs = CurveSpec(aux)
	return nil
}

// MarshalYAML writes a constant curve in the scalar shorthand.
func (cs CurveSpec) MarshalYAML() (interface{}, error) {
	if cs.Constant != nil && len(cs.Knots) == 0 {
		return cs.Constant, nil
	}
	type plain CurveSpec
	return plain(cs), nil
}

// Curve builds the runtime curve described by cs.
func (cs CurveSpec) Curve() (Curve, error) {
	switch {
	case cs.Constant != nil && len(cs.Knots) > 0:
		return nil, fmt.Errorf("specify either constant or knots, not both")
	case cs.Constant != nil:
		return ConstantCurve(cs.Constant.InexactFloat64()), nil
	case len(cs.Knots) > 0:
		times := make([]float64, len(cs.Knots))
		values := make([]float64, len(cs.Knots))
		for i, k := range cs.Knots {
			times[i] = k.Time.InexactFloat64()
			values[i] = k.Value.InexactFloat64()
		}
		return NewPiecewiseCurve(times, values, cs.Interpolation)
	default:
		return nil, fmt.Errorf("curve is required")
	}
}

// Curves builds the ParameterCurves; errors are ConfigurationErrors.
func (ps ParameterSettings) Curves() (ParameterCurves, error) {
	phi, err := ps.Phi.Curve()
	if err != nil {
		return ParameterCurves{}, NewConfigurationError("parameters.phi", "%v", err)
	}
	a, err := ps.A.Curve()
	if err != nil {
		return ParameterCurves{}, NewConfigurationError("parameters.a", "%v", err)
	}
	sigma, err := ps.Sigma.Curve()
	if err != nil {
		return ParameterCurves{}, NewConfigurationError("parameters.sigma", "%v", err)
	}
	return ParameterCurves{Phi: phi, A: a, Sigma: sigma}, nil
}

// SimulationConfig is the immutable numeric form of a run, passed by value
// down the call chain.
type SimulationConfig struct {
	InitialRate float64 `json:"initial_rate"`
	TimeStep    float64 `json:"time_step"`
	Steps       int     `json:"steps"`
	Paths       int     `json:"paths"`
	Seed        uint64  `json:"seed"`
	Workers     int     `json:"workers"`
}

// SimulationConfig converts the file settings.
func (c *Configuration) SimulationConfig() SimulationConfig {
	s := c.Simulation
	return SimulationConfig{
		InitialRate: s.InitialRate.InexactFloat64(),
		TimeStep:    s.TimeStep.InexactFloat64(),
		Steps:       s.Steps,
		Paths:       s.Paths,
		Seed:        s.Seed,
		Workers:     s.Workers,
	}
}

// Maturity is T = Steps * dt.
func (sc SimulationConfig) Maturity() float64 {
	return float64(sc.Steps) * sc.TimeStep
}

// Validate rejects grids that would make the estimate meaningless.
func (sc SimulationConfig) Validate() error {
	if math.IsNaN(sc.InitialRate) || math.IsInf(sc.InitialRate, 0) {
		return NewConfigurationError("simulation.initial_rate", "must be finite")
	}
	if !(sc.TimeStep > 0) || math.IsInf(sc.TimeStep, 0) {
		return NewConfigurationError("simulation.time_step", "must be positive, got %g", sc.TimeStep)
	}
	if sc.Steps <= 0 {
		return NewConfigurationError("simulation.steps", "must be positive, got %d", sc.Steps)
	}
	if sc.Paths <= 0 {
		return NewConfigurationError("simulation.paths", "must be positive, got %d", sc.Paths)
	}
	if sc.Workers < 0 {
		return NewConfigurationError("simulation.workers", "cannot be negative, got %d", sc.Workers)
	}
	return nil
}

// AnalyticConfig is the numeric form of AnalyticSettings.
type AnalyticConfig struct {
	ValuationTime   float64      `json:"valuation_time"`
	SpotRate        SpotRateMode `json:"spot_rate"`
	QuadratureNodes int          `json:"quadrature_nodes"`
}

// AnalyticConfig converts the file settings; an empty spot-rate mode means
// SpotRateSimulated.
func (c *Configuration) AnalyticConfig() AnalyticConfig {
	mode := c.Analytic.SpotRate
	if mode == "" {
		mode = SpotRateSimulated
	}
	return AnalyticConfig{
		ValuationTime:   c.Analytic.ValuationTime.InexactFloat64(),
		SpotRate:        mode,
		QuadratureNodes: c.Analytic.QuadratureNodes,
	}
}

// Validate checks the analytic settings against the simulation horizon.
func (ac AnalyticConfig) Validate(sim SimulationConfig) error {
	t := ac.ValuationTime
	if math.IsNaN(t) || t < 0 || t > sim.Maturity() {
		return NewConfigurationError("analytic.valuation_time", "must lie in [0, %g], got %g", sim.Maturity(), t)
	}
	switch ac.SpotRate {
	case SpotRateSimulated:
	case SpotRateDeterministic:
		if t != 0 {
			return NewConfigurationError("analytic.spot_rate", "deterministic spot rate is only defined at valuation_time 0")
		}
	default:
		return NewConfigurationError("analytic.spot_rate", "must be %q or %q, got %q", SpotRateSimulated, SpotRateDeterministic, ac.SpotRate)
	}
	if ac.QuadratureNodes < 0 {
		return NewConfigurationError("analytic.quadrature_nodes", "cannot be negative, got %d", ac.QuadratureNodes)
	}
	return nil
}
