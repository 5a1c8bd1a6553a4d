// Package rng owns every random draw made during a river build. Each
// build gets its own Sampler instance, so independent builds can run
// concurrently without sharing state.
//
// The draw order is part of the reproducibility contract: per segment,
// a straight segment consumes [length] and a curved segment consumes
// [radius, angle, sign]; field assignment then consumes
// [depth, velocity, direction] noise per grid point, stations first,
// lateral offsets within a station. Changing this order changes the
// rivers an existing seed produces.
package rng

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vesselsim/rivergen/internal/config"
)

// Sampler draws segment parameters and field noise from a single
// seeded source.
type Sampler struct {
	src    *rand.Rand
	seed   int64
	length distuv.Uniform
	radius distuv.Uniform
	angle  distuv.Uniform
	noise  distuv.Normal
}

// New creates a sampler for the given config. A negative seed in the
// config is replaced by a fresh wall-clock seed, retrievable via Seed.
func New(cfg config.Config) *Sampler {
	seed := cfg.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	src := rand.New(rand.NewSource(uint64(seed)))
	return &Sampler{
		src:    src,
		seed:   seed,
		length: distuv.Uniform{Min: cfg.Lengths.Low, Max: cfg.Lengths.High, Src: src},
		radius: distuv.Uniform{Min: cfg.Radii.Low, Max: cfg.Radii.High, Src: src},
		angle:  distuv.Uniform{Min: cfg.Angles.Low, Max: cfg.Angles.High, Src: src},
		noise:  distuv.Normal{Mu: 0, Sigma: cfg.Variance, Src: src},
	}
}

// Seed reports the seed actually used for this run.
func (s *Sampler) Seed() int64 { return s.seed }

// Length draws a straight segment length in meters.
func (s *Sampler) Length() float64 { return s.length.Rand() }

// Radius draws a curve radius in meters.
func (s *Sampler) Radius() float64 { return s.radius.Rand() }

// Angle draws a curve arc angle in degrees.
func (s *Sampler) Angle() float64 { return s.angle.Rand() }

// TurnSign draws the bend direction of a curve, +1 for left and -1 for
// right, each with probability one half.
func (s *Sampler) TurnSign() float64 {
	if s.src.Uint64()&1 == 0 {
		return 1
	}
	return -1
}

// Noise draws a zero-centered perturbation with the configured
// standard deviation. With variance zero it still consumes one draw,
// keeping the stream layout independent of the variance value.
func (s *Sampler) Noise() float64 { return s.noise.Rand() }
