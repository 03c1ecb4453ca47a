package calculation

import (
	"errors"

	"github.com/rpgo/zcbond/internal/domain"
	"github.com/rpgo/zcbond/internal/rng"
)

// constantSource returns the same variate forever.
type constantSource struct {
	z     float64
	draws int
}

func (c *constantSource) Normal(mu, sigma float64) (float64, error) {
	c.draws++
	return mu + sigma*c.z, nil
}

func (c *constantSource) Split(uint64) rng.Source { return &constantSource{z: c.z} }

var errExhausted = errors.New("entropy exhausted")

// failingSource serves `after` standard draws of zero and then fails.
type failingSource struct {
	after int
	draws int
}

func (f *failingSource) Normal(mu, sigma float64) (float64, error) {
	if f.draws >= f.after {
		return 0, errExhausted
	}
	f.draws++
	return mu, nil
}

func (f *failingSource) Split(uint64) rng.Source { return &failingSource{after: f.after} }

// referenceConfig mirrors the reference run but with a smaller sample.
func referenceConfig(paths, steps int, dt float64) domain.SimulationConfig {
	return domain.SimulationConfig{
		InitialRate: 0.05,
		TimeStep:    dt,
		Steps:       steps,
		Paths:       paths,
		Seed:        12345,
	}
}

func referenceCurves() domain.ParameterCurves {
	return domain.ConstantCurves(0.0001, 0.1, 0.01)
}

func zeroCurves() domain.ParameterCurves {
	return domain.ConstantCurves(0, 0, 0)
}
