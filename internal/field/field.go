// Package field assigns water depth and current to grid points. The
// cross-sectional profile is the same for straight and curved
// segments, so the fields alone never betray the segment type.
package field

import (
	"math"

	"github.com/vesselsim/rivergen/internal/geometry"
	"github.com/vesselsim/rivergen/internal/grid"
	"github.com/vesselsim/rivergen/internal/noise"
	"github.com/vesselsim/rivergen/internal/rng"
)

// Values is the per-point field sample: depth in meters, current
// direction in radians (downstream) and current speed in m/s.
type Values struct {
	Depth      float64 `json:"depth"`
	CurrentDir float64 `json:"current_dir"`
	CurrentVel float64 `json:"current_vel"`
}

// Assigner evaluates the depth and current profiles for one build.
type Assigner struct {
	maxDepth  float64
	maxVel    float64
	halfWidth float64
	roughAmp  float64
	sampler   *rng.Sampler
	rough     *noise.Generator
}

// New creates an assigner. rough may be nil when bed roughness is
// disabled; roughAmp is the roughness amplitude as a fraction of
// maxDepth.
func New(maxDepth, maxVel, halfWidth, roughAmp float64, sampler *rng.Sampler, rough *noise.Generator) *Assigner {
	return &Assigner{
		maxDepth:  maxDepth,
		maxVel:    maxVel,
		halfWidth: halfWidth,
		roughAmp:  roughAmp,
		sampler:   sampler,
		rough:     rough,
	}
}

// Assign computes field values for a segment's grid. Points are
// visited station-major, lateral-minor; each point consumes exactly
// three noise draws (depth, velocity, direction), so the random stream
// layout is independent of every parameter value.
func (a *Assigner) Assign(stations []geometry.Station, points [][]grid.Point) [][]Values {
	out := make([][]Values, len(points))
	for i, row := range points {
		heading := stations[i].Heading
		vals := make([]Values, len(row))
		for k, p := range row {
			depthNoise := a.sampler.Noise()
			velNoise := a.sampler.Noise()
			dirNoise := a.sampler.Noise()

			profile := a.profile(p.Offset)

			depth := a.maxDepth*profile + depthNoise
			if a.rough != nil && a.roughAmp > 0 {
				depth += a.roughAmp * a.maxDepth * a.rough.Roughness(p.Pos.X, p.Pos.Y)
			}

			vel := a.maxVel*profile + velNoise

			// Direction noise is drawn on the same scale as the
			// other perturbations but read as degrees, so typical
			// variances tilt the current by a few degrees at most.
			dir := geometry.NormalizeAngle(heading + geometry.Radians(dirNoise))

			vals[k] = Values{
				Depth:      clamp(depth, 0, a.maxDepth),
				CurrentDir: dir,
				CurrentVel: clamp(vel, 0, a.maxVel),
			}
		}
		out[i] = vals
	}
	return out
}

// profile is the shared concave cross-section: 1 at the centerline,
// 0 at both banks.
func (a *Assigner) profile(offset float64) float64 {
	u := offset / a.halfWidth
	v := 1 - u*u
	return math.Max(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
