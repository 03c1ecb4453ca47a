package calculation

import (
	"math"

	"github.com/rpgo/zcbond/internal/domain"
	"github.com/rpgo/zcbond/internal/quadrature"
	"github.com/rpgo/zcbond/internal/rng"
)

// Integrator approximates the integral of f over [a, b].
type Integrator interface {
	Integrate(f func(float64) float64, a, b float64) float64
}

// AnalyticSolver prices the bond with the Hull-White decomposition
//
//	H2(s)  = (1 - exp(-a(s)(T-s))) / a(s)
//	H1(t)  = exp( integral_t^T [ -phi(s) H2(s) + (sigma(s) H2(s))^2 / 2 ] ds )
//	B(t,T) = H1(t) exp(-r(t) H2(t))
//
// How r(t) is obtained is an open modelling choice, see domain.SpotRateMode.
// The simulated mode reuses the path generator and therefore carries Monte
// Carlo noise whenever t > 0.
type AnalyticSolver struct {
	config     domain.SimulationConfig
	curves     domain.ParameterCurves
	analytic   domain.AnalyticConfig
	integrator Integrator
	generator  *PathGenerator
	Logger     Logger
}

// NewAnalyticSolver validates the inputs. A nil integrator selects a
// Gauss-Legendre rule with the configured node count.
func NewAnalyticSolver(cfg domain.SimulationConfig, curves domain.ParameterCurves, ac domain.AnalyticConfig, integrator Integrator) (*AnalyticSolver, error) {
	generator, err := NewPathGenerator(cfg, curves)
	if err != nil {
		return nil, err
	}
	if ac.SpotRate == "" {
		ac.SpotRate = domain.SpotRateSimulated
	}
	if err := ac.Validate(cfg); err != nil {
		return nil, err
	}
	if integrator == nil {
		integrator = quadrature.NewGaussLegendre(ac.QuadratureNodes)
	}
	return &AnalyticSolver{
		config:     cfg,
		curves:     curves,
		analytic:   ac,
		integrator: integrator,
		generator:  generator,
		Logger:     NopLogger{},
	}, nil
}

// H2 is the bond's rate sensitivity factor at time s. A zero mean-reversion
// speed takes the limit T - s, and H2(T) = 0.
func (as *AnalyticSolver) H2(s float64) float64 {
	tau := as.config.Maturity() - s
	if tau == 0 {
		return 0
	}
	a := as.curves.A.Value(s)
	if a == 0 {
		return tau
	}
	return -math.Expm1(-a*tau) / a
}

// H1 is the deterministic part of the price. The integral over [t, T] is
// split at the curve knots so each panel has a smooth integrand.
func (as *AnalyticSolver) H1(t float64) float64 {
	integrand := func(s float64) float64 {
		h := as.H2(s)
		vol := as.curves.Sigma.Value(s) * h
		return -as.curves.Phi.Value(s)*h + 0.5*vol*vol
	}
	maturity := as.config.Maturity()
	edges := quadrature.Panels(t, maturity, as.curves.Breakpoints(t, maturity))
	var total float64
	for i := 1; i < len(edges); i++ {
		total += as.integrator.Integrate(integrand, edges[i-1], edges[i])
	}
	return math.Exp(total)
}

// SpotRate returns r(t) according to the configured mode. The simulated mode
// draws round(t/dt) steps from src; at t = 0 it draws nothing.
func (as *AnalyticSolver) SpotRate(t float64, src rng.Source) (float64, error) {
	if as.analytic.SpotRate == domain.SpotRateDeterministic {
		if t != 0 {
			return 0, domain.NewConfigurationError("analytic.spot_rate", "deterministic spot rate is only defined at valuation_time 0")
		}
		return as.config.InitialRate, nil
	}
	steps := int(math.Round(t / as.config.TimeStep))
	return as.generator.FinalRateAfter(src, steps)
}

// Price computes B(t,T).
func (as *AnalyticSolver) Price(t float64, src rng.Source) (*domain.AnalyticResult, error) {
	if err := (domain.AnalyticConfig{ValuationTime: t, SpotRate: as.analytic.SpotRate}).Validate(as.config); err != nil {
		return nil, err
	}
	start := nowFunc()

	r, err := as.SpotRate(t, src)
	if err != nil {
		return nil, err
	}
	h1 := as.H1(t)
	h2 := as.H2(t)

	result := &domain.AnalyticResult{
		Price:         h1 * math.Exp(-r*h2),
		H1:            h1,
		H2:            h2,
		SpotRate:      r,
		SpotRateMode:  as.analytic.SpotRate,
		ValuationTime: t,
		Maturity:      as.config.Maturity(),
		Elapsed:       nowFunc().Sub(start),
	}
	as.Logger.Infof("analytic price %.8f (H1=%.8f H2=%.8f r=%.6f, %s spot rate)",
		result.Price, h1, h2, r, result.SpotRateMode)
	return result, nil
}
