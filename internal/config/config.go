package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure so callers can
// test with errors.Is without matching message text.
var ErrInvalidConfig = errors.New("invalid configuration")

// SeedUnset marks a run that should draw a fresh seed at build start.
// The drawn seed is recorded on the river so the run stays reproducible.
const SeedUnset int64 = -1

// Range is a closed interval used for uniform sampling.
type Range struct {
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
}

// Config holds every generation parameter. Instances are treated as
// immutable once validated; the builder never writes back into them.
type Config struct {
	Seed       int64 `yaml:"seed" json:"seed"`
	Segments   int   `yaml:"segments" json:"segments"`
	Canal      bool  `yaml:"canal" json:"canal"`
	GridPoints int   `yaml:"grid_points" json:"grid_points"`
	// Spacing between neighbouring grid points, along the centerline
	// and across it, in meters.
	Spacing float64 `yaml:"spacing" json:"spacing"`

	Lengths Range `yaml:"lengths" json:"lengths"` // straight segment lengths [m]
	Radii   Range `yaml:"radii" json:"radii"`     // curved segment radii [m]
	Angles  Range `yaml:"angles" json:"angles"`   // curved segment arc angles [deg]

	MaxDepth float64 `yaml:"max_depth" json:"max_depth"` // depth at the centerline [m]
	MaxVel   float64 `yaml:"max_vel" json:"max_vel"`     // current speed at the centerline [m/s]
	Variance float64 `yaml:"variance" json:"variance"`   // std dev of depth/velocity noise

	// BedRoughness adds seeded Perlin detail to the depth field.
	// Zero disables it.
	BedRoughness float64 `yaml:"bed_roughness" json:"bed_roughness"`

	// StartAtUTM translates the finished river to the midpoint of the
	// given UTM zone (1-60). Zero leaves the river at the origin.
	StartAtUTM int `yaml:"start_at_utm" json:"start_at_utm"`

	SavePath string `yaml:"save_path" json:"save_path"`
	Exporter string `yaml:"exporter" json:"exporter"`
}

// Default returns a config with the sampling ranges and grid shape the
// original scenario files use. Callers still pick seed and output.
func Default() Config {
	return Config{
		Seed:       SeedUnset,
		Segments:   10,
		GridPoints: 76,
		Spacing:    20,
		Lengths:    Range{Low: 400, High: 2000},
		Radii:      Range{Low: 500, High: 2000},
		Angles:     Range{Low: 60, High: 80},
		MaxDepth:   7,
		MaxVel:     1,
		Variance:   1,
		SavePath:   "gen",
		Exporter:   "whitespace",
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every invariant the builder relies on. It runs before
// any sampling, so a validated config can never fail mid-build.
func (c Config) Validate() error {
	if c.Segments < 1 {
		return fmt.Errorf("%w: segments must be >= 1, got %d", ErrInvalidConfig, c.Segments)
	}
	if c.GridPoints < 2 {
		return fmt.Errorf("%w: grid_points must be >= 2, got %d", ErrInvalidConfig, c.GridPoints)
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("%w: spacing must be > 0, got %g", ErrInvalidConfig, c.Spacing)
	}
	if err := c.Lengths.validate("lengths"); err != nil {
		return err
	}
	if c.Lengths.Low <= 0 {
		return fmt.Errorf("%w: lengths.low must be > 0, got %g", ErrInvalidConfig, c.Lengths.Low)
	}
	if !c.Canal {
		if err := c.Radii.validate("radii"); err != nil {
			return err
		}
		if err := c.Angles.validate("angles"); err != nil {
			return err
		}
		if c.Radii.Low <= 0 {
			return fmt.Errorf("%w: radii.low must be > 0, got %g", ErrInvalidConfig, c.Radii.Low)
		}
		if c.Angles.Low <= 0 {
			return fmt.Errorf("%w: angles.low must be > 0, got %g", ErrInvalidConfig, c.Angles.Low)
		}
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must be >= 0, got %g", ErrInvalidConfig, c.MaxDepth)
	}
	if c.MaxVel < 0 {
		return fmt.Errorf("%w: max_vel must be >= 0, got %g", ErrInvalidConfig, c.MaxVel)
	}
	if c.Variance < 0 {
		return fmt.Errorf("%w: variance must be >= 0, got %g", ErrInvalidConfig, c.Variance)
	}
	if c.BedRoughness < 0 {
		return fmt.Errorf("%w: bed_roughness must be >= 0, got %g", ErrInvalidConfig, c.BedRoughness)
	}
	if c.StartAtUTM != 0 && (c.StartAtUTM < 1 || c.StartAtUTM > 60) {
		return fmt.Errorf("%w: start_at_utm must be 0 or within [1,60], got %d", ErrInvalidConfig, c.StartAtUTM)
	}
	return nil
}

func (r Range) validate(name string) error {
	if r.Low > r.High {
		return fmt.Errorf("%w: %s.low (%g) must not exceed %s.high (%g)", ErrInvalidConfig, name, r.Low, name, r.High)
	}
	return nil
}

// HalfWidth is the lateral distance from the centerline to the banks.
func (c Config) HalfWidth() float64 {
	return float64(c.GridPoints-1) / 2 * c.Spacing
}
