package calculation

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"

	"github.com/rpgo/zcbond/internal/domain"
	"github.com/rpgo/zcbond/internal/rng"
	"gonum.org/v1/gonum/stat"
)

// MonteCarloEstimator estimates B(0,T) = E[exp(-integral of r)] by averaging
// per-path discount factors over a fixed number of paths.
type MonteCarloEstimator struct {
	generator *PathGenerator
	config    domain.SimulationConfig
	Logger    Logger
}

// NewMonteCarloEstimator validates the configuration before any path is run.
func NewMonteCarloEstimator(cfg domain.SimulationConfig, curves domain.ParameterCurves) (*MonteCarloEstimator, error) {
	generator, err := NewPathGenerator(cfg, curves)
	if err != nil {
		return nil, err
	}
	return &MonteCarloEstimator{
		generator: generator,
		config:    cfg,
		Logger:    NopLogger{},
	}, nil
}

// Estimate runs every path and returns the sample mean of the discount
// factors.
//
// With Workers <= 1 all paths draw in order from src, which reproduces the
// classic single-stream sequence. With more workers path i draws from
// src.Split(i), so the estimate no longer depends on scheduling or on the
// worker count, but differs numerically from the sequential one.
func (mce *MonteCarloEstimator) Estimate(src rng.Source) (*domain.MonteCarloResult, error) {
	start := nowFunc()
	workers := mce.config.Workers
	if workers < 1 {
		workers = 1
	}
	mce.Logger.Debugf("monte carlo: %d paths x %d steps (dt=%g) on %d worker(s)",
		mce.config.Paths, mce.config.Steps, mce.config.TimeStep, workers)

	factors := make([]float64, mce.config.Paths)
	var err error
	if workers == 1 {
		err = mce.runSequential(src, factors)
	} else {
		err = mce.runParallel(src, factors, workers)
	}
	if err != nil {
		mce.Logger.Errorf("monte carlo aborted: %v", err)
		return nil, err
	}

	result := &domain.MonteCarloResult{
		Price:   stat.Mean(factors, nil),
		Paths:   mce.config.Paths,
		Steps:   mce.config.Steps,
		Workers: workers,
		Seed:    mce.config.Seed,
	}
	if len(factors) > 1 {
		result.StandardError = stat.StdDev(factors, nil) / math.Sqrt(float64(len(factors)))
	}
	result.Elapsed = nowFunc().Sub(start)

	mce.Logger.Infof("monte carlo price %.8f (std err %.2e) in %s", result.Price, result.StandardError, result.Elapsed)
	return result, nil
}

func (mce *MonteCarloEstimator) runSequential(src rng.Source, factors []float64) error {
	for i := range factors {
		df, err := mce.discountFactor(src)
		if err != nil {
			return withPath(err, i)
		}
		factors[i] = df
	}
	return nil
}

func (mce *MonteCarloEstimator) runParallel(src rng.Source, factors []float64, workers int) error {
	jobs := make(chan int, workers)
	errs := make([]error, workers)
	var failed atomic.Bool
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := range jobs {
				if failed.Load() {
					continue // drain
				}
				df, err := mce.discountFactor(src.Split(uint64(i)))
				if err != nil {
					errs[worker] = withPath(err, i)
					failed.Store(true)
					continue
				}
				factors[i] = df
			}
		}(w)
	}

	for i := 0; i < len(factors); i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return firstByPath(errs)
}

// discountFactor runs one path and returns exp(-sum r dt) over the post-step
// rates.
func (mce *MonteCarloEstimator) discountFactor(src rng.Source) (float64, error) {
	dt := mce.config.TimeStep
	var integral float64
	_, err := mce.generator.walk(src, mce.config.Steps, func(_, r float64) {
		integral += r * dt
	})
	if err != nil {
		return 0, err
	}
	return math.Exp(-integral), nil
}

func withPath(err error, path int) error {
	var rse *domain.RandomSourceError
	if errors.As(err, &rse) {
		rse.Path = path
	}
	return err
}

// firstByPath reports the observed failure with the lowest path index.
func firstByPath(errs []error) error {
	var first error
	lowest := math.MaxInt
	for _, err := range errs {
		if err == nil {
			continue
		}
		path := -1
		var rse *domain.RandomSourceError
		if errors.As(err, &rse) {
			path = rse.Path
		}
		if first == nil || path < lowest {
			first, lowest = err, path
		}
	}
	return first
}
