package river

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesselsim/rivergen/internal/config"
	"github.com/vesselsim/rivergen/internal/geometry"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 1
	cfg.Segments = 6
	cfg.GridPoints = 5
	cfg.Spacing = 20
	cfg.Variance = 0
	return cfg
}

func TestBuildValidatesFirst(t *testing.T) {
	cfg := testConfig()
	cfg.GridPoints = 1

	r, err := Build(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Nil(t, r)
}

func TestPoseContinuity(t *testing.T) {
	r, err := Build(testConfig())
	require.NoError(t, err)

	for i := 1; i < len(r.Segments); i++ {
		prev := r.Segments[i-1]
		cur := r.Segments[i]

		assert.InDelta(t, prev.Exit.Pos.X, cur.Entry.Pos.X, 1e-9)
		assert.InDelta(t, prev.Exit.Pos.Y, cur.Entry.Pos.Y, 1e-9)

		// Heading equality modulo a full turn.
		diff := geometry.NormalizeAngle(prev.Exit.Heading - cur.Entry.Heading)
		assert.InDelta(t, 0, diff, 1e-9)

		// The next segment's first station sits at the shared pose.
		require.NotEmpty(t, cur.Stations)
		assert.InDelta(t, cur.Entry.Pos.X, cur.Stations[0].Pos.X, 1e-9)
		assert.InDelta(t, cur.Entry.Pos.Y, cur.Stations[0].Pos.Y, 1e-9)
	}
}

func TestAlternation(t *testing.T) {
	t.Run("river alternates starting straight", func(t *testing.T) {
		r, err := Build(testConfig())
		require.NoError(t, err)

		for i, seg := range r.Segments {
			want := geometry.Straight.String()
			if i%2 == 1 {
				want = geometry.Curved.String()
			}
			assert.Equal(t, want, seg.Descriptor.Kind, "segment %d", i)
		}
	})

	t.Run("canal is all straight", func(t *testing.T) {
		cfg := testConfig()
		cfg.Canal = true
		r, err := Build(cfg)
		require.NoError(t, err)

		for i, seg := range r.Segments {
			assert.Equal(t, geometry.Straight.String(), seg.Descriptor.Kind, "segment %d", i)
			assert.Equal(t, 0.0, seg.Exit.Heading, "canal never changes heading")
		}
	})
}

func TestDeterminism(t *testing.T) {
	cfg := testConfig()
	cfg.Variance = 1.5
	cfg.BedRoughness = 0.2

	a, err := Build(cfg)
	require.NoError(t, err)
	b, err := Build(cfg)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(a, b), "same seed must reproduce the river bit for bit")
}

func TestFreshSeedIsReported(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = config.SeedUnset

	a, err := Build(cfg)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, a.Seed, int64(0))

	// Replaying the reported seed reproduces the river.
	cfg.Seed = a.Seed
	b, err := Build(cfg)
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(a, b))
}

func TestFieldBounds(t *testing.T) {
	cfg := testConfig()
	cfg.Variance = 3
	cfg.Segments = 4

	r, err := Build(cfg)
	require.NoError(t, err)

	for _, seg := range r.Segments {
		for _, row := range seg.Fields {
			for _, v := range row {
				assert.GreaterOrEqual(t, v.Depth, 0.0)
				assert.LessOrEqual(t, v.Depth, cfg.MaxDepth)
				assert.GreaterOrEqual(t, v.CurrentVel, 0.0)
				assert.LessOrEqual(t, v.CurrentVel, cfg.MaxVel)
			}
		}
	}
}

func TestGridCardinality(t *testing.T) {
	cfg := testConfig()
	cfg.Segments = 5
	cfg.GridPoints = 4

	r, err := Build(cfg)
	require.NoError(t, err)

	stations := 0
	for _, seg := range r.Segments {
		require.Len(t, seg.Points, len(seg.Stations))
		require.Len(t, seg.Fields, len(seg.Stations))
		for i := range seg.Points {
			require.Len(t, seg.Points[i], cfg.GridPoints)
			require.Len(t, seg.Fields[i], cfg.GridPoints)
		}
		stations += len(seg.Stations)
	}
	assert.Equal(t, stations, r.StationCount())
	assert.Equal(t, stations*cfg.GridPoints, r.PointCount())
}

// The fixed two-segment scenario: a 400m straight followed by a 500m
// radius quarter turn, no noise.
func TestTwoSegmentScenario(t *testing.T) {
	cfg := config.Config{
		Seed:       1,
		Segments:   2,
		GridPoints: 3,
		Spacing:    20,
		Lengths:    config.Range{Low: 400, High: 400},
		Radii:      config.Range{Low: 500, High: 500},
		Angles:     config.Range{Low: 90, High: 90},
		MaxDepth:   7,
		MaxVel:     1,
		Variance:   0,
		SavePath:   "gen",
		Exporter:   "whitespace",
	}

	r, err := Build(cfg)
	require.NoError(t, err)
	require.Len(t, r.Segments, 2)

	first, second := r.Segments[0], r.Segments[1]

	assert.Equal(t, "straight", first.Descriptor.Kind)
	assert.Equal(t, 400.0, first.Descriptor.Length)
	assert.Len(t, first.Stations, 21)

	assert.Equal(t, "curved", second.Descriptor.Kind)
	assert.Equal(t, 500.0, second.Descriptor.Radius)
	assert.InDelta(t, 90, second.Descriptor.Angle, 1e-9)
	wantStations := int(math.Floor(500*math.Pi/2/20)) + 1
	assert.Len(t, second.Stations, wantStations)

	// Exit heading differs from entry by the full quarter turn.
	turn := geometry.NormalizeAngle(second.Exit.Heading - second.Entry.Heading)
	assert.InDelta(t, math.Pi/2, math.Abs(turn), 1e-9)

	// With zero variance every point matches the closed-form profile.
	for _, seg := range r.Segments {
		for i, row := range seg.Fields {
			assert.InDelta(t, 0, row[0].Depth, 1e-12)
			assert.InDelta(t, 7, row[1].Depth, 1e-12)
			assert.InDelta(t, 0, row[2].Depth, 1e-12)
			assert.InDelta(t, 1, row[1].CurrentVel, 1e-12)
			assert.Equal(t, geometry.NormalizeAngle(seg.Stations[i].Heading), row[1].CurrentDir)
		}
	}
}

func TestConstantLengthRange(t *testing.T) {
	cfg := testConfig()
	cfg.Canal = true
	cfg.Segments = 5
	cfg.Lengths = config.Range{Low: 640, High: 640}

	for _, seed := range []int64{1, 2, 99} {
		cfg.Seed = seed
		r, err := Build(cfg)
		require.NoError(t, err)
		for _, seg := range r.Segments {
			assert.Equal(t, 640.0, seg.Descriptor.Length)
		}
	}
}

func TestTwoPointGrid(t *testing.T) {
	cfg := testConfig()
	cfg.GridPoints = 2

	r, err := Build(cfg)
	require.NoError(t, err)

	for _, seg := range r.Segments {
		for i, row := range seg.Points {
			require.Len(t, row, 2)
			assert.InDelta(t, -cfg.Spacing/2, row[0].Offset, 1e-9)
			assert.InDelta(t, cfg.Spacing/2, row[1].Offset, 1e-9)

			// Neither point coincides with the centerline station.
			st := seg.Stations[i].Pos
			for _, p := range row {
				d := math.Hypot(p.Pos.X-st.X, p.Pos.Y-st.Y)
				assert.InDelta(t, cfg.Spacing/2, d, 1e-9)
			}
		}
	}
}

func TestDegenerateCurveBuilds(t *testing.T) {
	cfg := testConfig()
	cfg.Segments = 3
	// Arc length at most 30*(12deg in rad) ~ 6.3m, below the spacing.
	cfg.Radii = config.Range{Low: 30, High: 30}
	cfg.Angles = config.Range{Low: 12, High: 12}

	r, err := Build(cfg)
	require.NoError(t, err)
	require.Len(t, r.Segments, 3)

	curve := r.Segments[1]
	assert.Equal(t, "curved", curve.Descriptor.Kind)
	assert.Len(t, curve.Stations, 1)
	assert.Equal(t, curve.Exit.Pos, curve.Stations[0].Pos)
}

func TestTranslate(t *testing.T) {
	r, err := Build(testConfig())
	require.NoError(t, err)

	before := r.Segments[2].Points[1][0].Pos
	r.Translate(1000, -500)
	after := r.Segments[2].Points[1][0].Pos

	assert.InDelta(t, before.X+1000, after.X, 1e-9)
	assert.InDelta(t, before.Y-500, after.Y, 1e-9)
	assert.InDelta(t, 1000, r.Segments[0].Entry.Pos.X, 1e-9)
}

func TestDescriptorString(t *testing.T) {
	s := Descriptor{Kind: "straight", Length: 123.456}
	assert.Equal(t, "straight(length=123.46)", s.String())

	c := Descriptor{Kind: "curved", Radius: 500, Angle: 90, Sign: -1}
	assert.Equal(t, "curved(radius=500.00, angle=90.00, turn=right)", c.String())
}
