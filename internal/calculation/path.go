package calculation

import (
	"math"

	"github.com/rpgo/zcbond/internal/domain"
	"github.com/rpgo/zcbond/internal/rng"
)

// PathGenerator simulates the short rate with the explicit Euler scheme
//
//	r <- r + (phi(t) - a(t) r) dt + z sigma(t) dt,   z ~ Normal(0, 1/sqrt(dt)),
//
// so that z sigma dt has the Wiener increment variance sigma^2 dt. Curves are
// evaluated at the start of each step.
type PathGenerator struct {
	config     domain.SimulationConfig
	curves     domain.ParameterCurves
	noiseScale float64
}

// NewPathGenerator validates the grid and curves.
func NewPathGenerator(cfg domain.SimulationConfig, curves domain.ParameterCurves) (*PathGenerator, error) {
	if err := curves.Validate(cfg); err != nil {
		return nil, err
	}
	return &PathGenerator{
		config:     cfg,
		curves:     curves,
		noiseScale: 1 / math.Sqrt(cfg.TimeStep),
	}, nil
}

// FinalRate runs a full path of Steps steps and returns r(T).
func (pg *PathGenerator) FinalRate(src rng.Source) (float64, error) {
	return pg.FinalRateAfter(src, pg.config.Steps)
}

// FinalRateAfter runs steps Euler steps from R0 and returns the rate reached.
// Zero steps return R0 without drawing.
func (pg *PathGenerator) FinalRateAfter(src rng.Source, steps int) (float64, error) {
	if steps < 0 {
		return 0, domain.NewConfigurationError("steps", "cannot be negative, got %d", steps)
	}
	return pg.walk(src, steps, nil)
}

// Sample runs a full path and records every point, starting with (0, R0).
func (pg *PathGenerator) Sample(src rng.Source) (domain.PathSample, error) {
	sample := make(domain.PathSample, 0, pg.config.Steps+1)
	sample = append(sample, domain.PathPoint{Time: 0, Rate: pg.config.InitialRate})
	_, err := pg.walk(src, pg.config.Steps, func(t, r float64) {
		sample = append(sample, domain.PathPoint{Time: t, Rate: r})
	})
	if err != nil {
		return nil, err
	}
	return sample, nil
}

// walk advances the rate; visit, when set, sees each post-step (t, r).
func (pg *PathGenerator) walk(src rng.Source, steps int, visit func(t, r float64)) (float64, error) {
	dt := pg.config.TimeStep
	r := pg.config.InitialRate
	for k := 0; k < steps; k++ {
		t := float64(k) * dt
		z, err := src.Normal(0, pg.noiseScale)
		if err != nil {
			return 0, &domain.RandomSourceError{Path: -1, Step: k, Err: err}
		}
		r += (pg.curves.Phi.Value(t)-pg.curves.A.Value(t)*r)*dt + z*pg.curves.Sigma.Value(t)*dt
		if visit != nil {
			visit(float64(k+1)*dt, r)
		}
	}
	return r, nil
}
