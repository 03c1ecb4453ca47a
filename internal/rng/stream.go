// Package rng provides explicit, seedable streams of normal variates.
//
// A Stream replaces process-wide random state: every function that draws
// randomness receives the stream it draws from, so a fixed seed and a fixed
// draw order reproduce a run exactly.
package rng

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// ErrInvalidDistribution is returned for a non-finite mean or a negative or
// non-finite standard deviation.
var ErrInvalidDistribution = errors.New("rng: invalid normal distribution parameters")

// ErrNonFiniteSample is returned when a draw is NaN or infinite.
var ErrNonFiniteSample = errors.New("rng: non-finite sample")

// Source supplies normal variates and independent child sources.
type Source interface {
	// Normal draws one sample from Normal(mu, sigma).
	Normal(mu, sigma float64) (float64, error)
	// Split returns an independent source identified by id. It must not
	// consume the parent's stream.
	Split(id uint64) Source
}

// Stream is a PCG-backed Source. A Stream is not safe for concurrent draws;
// Split is safe to call concurrently because it only reads the seed.
type Stream struct {
	seed  uint64
	draws uint64
	rnd   *rand.Rand
}

// New returns a stream seeded with seed.
func New(seed uint64) *Stream {
	return &Stream{seed: seed, rnd: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() uint64 { return s.seed }

// Draws returns how many samples have been taken, i.e. the stream position.
func (s *Stream) Draws() uint64 { return s.draws }

func (s *Stream) Normal(mu, sigma float64) (float64, error) {
	if math.IsNaN(mu) || math.IsInf(mu, 0) || !(sigma >= 0) || math.IsInf(sigma, 0) {
		return 0, fmt.Errorf("%w: mu=%g sigma=%g", ErrInvalidDistribution, mu, sigma)
	}
	x := mu + sigma*s.rnd.NormFloat64()
	s.draws++
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w after %d draws", ErrNonFiniteSample, s.draws)
	}
	return x, nil
}

func (s *Stream) Split(id uint64) Source {
	return New(splitmix64(s.seed ^ splitmix64(id+1)))
}

// splitmix64 is the SplitMix64 finalizer; it decorrelates child seeds that
// differ in a few bits.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
