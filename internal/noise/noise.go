// Package noise provides the seeded Perlin field used for bed
// roughness detail. One generator is created per build from the run
// seed, so roughness is as reproducible as the rest of the river.
package noise

import (
	"github.com/aquilax/go-perlin"
)

// roughnessScale is the horizontal wavelength of bed detail in meters.
// Larger values give broader, smoother undulation.
const roughnessScale = 200.0

// Generator wraps a Perlin source behind the one query the field
// assigner needs.
type Generator struct {
	noise *perlin.Perlin
	seed  int64
}

// NewGenerator creates a roughness generator for the given seed.
func NewGenerator(seed int64) *Generator {
	// alpha=2, beta=2, n=3 give terrain-like noise without visible
	// lattice artifacts at the scales we sample.
	return &Generator{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		seed:  seed,
	}
}

// Roughness returns a value in roughly [-1, 1] for a world position.
func (g *Generator) Roughness(x, y float64) float64 {
	return g.noise.Noise2D(x/roughnessScale, y/roughnessScale)
}

// Seed returns the seed this generator was built with.
func (g *Generator) Seed() int64 { return g.seed }
