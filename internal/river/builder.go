// Package river chains sampled segments into a complete synthetic
// river. Segment i+1 starts exactly at segment i's exit pose, so the
// chain is one connected centerline with no heading discontinuity.
package river

import (
	"github.com/charmbracelet/log"

	"github.com/vesselsim/rivergen/internal/config"
	"github.com/vesselsim/rivergen/internal/field"
	"github.com/vesselsim/rivergen/internal/geometry"
	"github.com/vesselsim/rivergen/internal/grid"
	"github.com/vesselsim/rivergen/internal/noise"
	"github.com/vesselsim/rivergen/internal/rng"
)

// Build validates the configuration and assembles a river. It is the
// sole entry point of the generator: once validation passes, the build
// cannot fail, since every sampled value comes from ranges already
// constrained to be geometrically valid.
func Build(cfg config.Config) (*River, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sampler := rng.New(cfg)
	log.Debug("starting river build",
		"seed", sampler.Seed(),
		"segments", cfg.Segments,
		"canal", cfg.Canal,
		"grid_points", cfg.GridPoints,
		"spacing", cfg.Spacing,
	)

	var rough *noise.Generator
	if cfg.BedRoughness > 0 {
		rough = noise.NewGenerator(sampler.Seed())
	}
	assigner := field.New(cfg.MaxDepth, cfg.MaxVel, cfg.HalfWidth(), cfg.BedRoughness, sampler, rough)

	pose := geometry.Pose{}
	segments := make([]Segment, 0, cfg.Segments)

	for i := 0; i < cfg.Segments; i++ {
		spec := nextSpec(i, cfg, sampler)

		if spec.Kind == geometry.Curved && spec.ArcLength() < cfg.Spacing {
			log.Warn("degenerate curved segment, emitting single station",
				"segment", i, "arc_length", spec.ArcLength(), "spacing", cfg.Spacing)
		}

		entry := pose
		stations, exit := geometry.Trace(spec, entry, cfg.Spacing)
		points := grid.Build(stations, cfg.GridPoints, cfg.Spacing)
		fields := assigner.Assign(stations, points)

		seg := Segment{
			Descriptor: describe(spec),
			Entry:      entry,
			Exit:       exit,
			Stations:   stations,
			Points:     points,
			Fields:     fields,
		}
		segments = append(segments, seg)
		pose = exit

		log.Debug("segment built",
			"segment", i,
			"kind", spec.Kind.String(),
			"stations", len(stations),
			"exit_heading", geometry.Degrees(exit.Heading),
		)
	}

	r := &River{Seed: sampler.Seed(), Segments: segments}
	log.Info("river build completed",
		"seed", r.Seed,
		"segments", len(r.Segments),
		"stations", r.StationCount(),
		"points", r.PointCount(),
	)
	return r, nil
}

// nextSpec samples the parameters for segment i. Types strictly
// alternate starting with straight; canal mode forces every segment
// straight. Curved draws consume radius, angle and sign in that order,
// which is part of the seed reproducibility contract.
func nextSpec(i int, cfg config.Config, sampler *rng.Sampler) geometry.Spec {
	if cfg.Canal || i%2 == 0 {
		return geometry.Spec{
			Kind:   geometry.Straight,
			Length: sampler.Length(),
		}
	}
	return geometry.Spec{
		Kind:   geometry.Curved,
		Radius: sampler.Radius(),
		Angle:  geometry.Radians(sampler.Angle()),
		Sign:   sampler.TurnSign(),
	}
}

func describe(spec geometry.Spec) Descriptor {
	if spec.Kind == geometry.Curved {
		return Descriptor{
			Kind:   spec.Kind.String(),
			Radius: spec.Radius,
			Angle:  geometry.Degrees(spec.Angle),
			Sign:   spec.Sign,
		}
	}
	return Descriptor{
		Kind:   spec.Kind.String(),
		Length: spec.Length,
	}
}
