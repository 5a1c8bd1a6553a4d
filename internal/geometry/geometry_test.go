package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestTraceStraight(t *testing.T) {
	t.Run("stations every spacing including the entry", func(t *testing.T) {
		spec := Spec{Kind: Straight, Length: 400}
		stations, exit := Trace(spec, Pose{}, 20)

		require.Len(t, stations, 21)
		assert.InDelta(t, 0, stations[0].Pos.X, tol)
		assert.InDelta(t, 400, stations[20].Pos.X, tol)
		for i, st := range stations {
			assert.InDelta(t, float64(i)*20, st.Pos.X, tol)
			assert.InDelta(t, 0, st.Pos.Y, tol)
			assert.Equal(t, 0.0, st.Heading)
		}
		assert.InDelta(t, 400, exit.Pos.X, tol)
		assert.Equal(t, 0.0, exit.Heading)
	})

	t.Run("truncates when length is no exact multiple", func(t *testing.T) {
		spec := Spec{Kind: Straight, Length: 390}
		stations, exit := Trace(spec, Pose{}, 20)

		// Last station falls short of the exit; no padding.
		require.Len(t, stations, 20)
		assert.InDelta(t, 380, stations[19].Pos.X, tol)
		assert.InDelta(t, 390, exit.Pos.X, tol)
	})

	t.Run("follows a rotated entry heading", func(t *testing.T) {
		entry := Pose{Pos: Point{X: 10, Y: 5}, Heading: math.Pi / 2}
		spec := Spec{Kind: Straight, Length: 100}
		stations, exit := Trace(spec, entry, 25)

		require.Len(t, stations, 5)
		for i, st := range stations {
			assert.InDelta(t, 10, st.Pos.X, tol)
			assert.InDelta(t, 5+float64(i)*25, st.Pos.Y, tol)
		}
		assert.InDelta(t, 105, exit.Pos.Y, tol)
		assert.Equal(t, math.Pi/2, exit.Heading)
	})
}

func TestTraceCurved(t *testing.T) {
	t.Run("left quarter turn", func(t *testing.T) {
		spec := Spec{Kind: Curved, Radius: 500, Angle: math.Pi / 2, Sign: 1}
		stations, exit := Trace(spec, Pose{}, 20)

		arc := 500 * math.Pi / 2
		require.Len(t, stations, int(math.Floor(arc/20))+1)

		// Entry station sits at the entry pose.
		assert.InDelta(t, 0, stations[0].Pos.X, tol)
		assert.InDelta(t, 0, stations[0].Pos.Y, tol)

		// Every station keeps distance radius from the circle center.
		center := Point{X: 0, Y: 500}
		for _, st := range stations {
			d := math.Hypot(st.Pos.X-center.X, st.Pos.Y-center.Y)
			assert.InDelta(t, 500, d, 1e-6)
		}

		// Exit is a quarter turn to the left.
		assert.InDelta(t, math.Pi/2, exit.Heading, tol)
		assert.InDelta(t, 500, exit.Pos.X, 1e-6)
		assert.InDelta(t, 500, exit.Pos.Y, 1e-6)
	})

	t.Run("right turn mirrors the left turn", func(t *testing.T) {
		left := Spec{Kind: Curved, Radius: 300, Angle: 1, Sign: 1}
		right := Spec{Kind: Curved, Radius: 300, Angle: 1, Sign: -1}

		ls, lexit := Trace(left, Pose{}, 15)
		rs, rexit := Trace(right, Pose{}, 15)

		require.Equal(t, len(ls), len(rs))
		for i := range ls {
			assert.InDelta(t, ls[i].Pos.X, rs[i].Pos.X, 1e-6)
			assert.InDelta(t, ls[i].Pos.Y, -rs[i].Pos.Y, 1e-6)
		}
		assert.InDelta(t, lexit.Heading, -rexit.Heading, tol)
	})

	t.Run("station spacing matches arc length", func(t *testing.T) {
		spec := Spec{Kind: Curved, Radius: 800, Angle: 1.2, Sign: -1}
		stations, _ := Trace(spec, Pose{Heading: 0.4}, 20)

		// Chord length between stations approximates the 20m arc
		// step closely at these radii.
		for i := 1; i < len(stations); i++ {
			chord := math.Hypot(
				stations[i].Pos.X-stations[i-1].Pos.X,
				stations[i].Pos.Y-stations[i-1].Pos.Y,
			)
			assert.InDelta(t, 20, chord, 0.01)
		}
	})

	t.Run("degenerate arc yields single exit station", func(t *testing.T) {
		// Arc length 10m with 20m spacing.
		spec := Spec{Kind: Curved, Radius: 10, Angle: 1, Sign: 1}
		stations, exit := Trace(spec, Pose{}, 20)

		require.Len(t, stations, 1)
		assert.Equal(t, exit.Pos, stations[0].Pos)
		assert.Equal(t, exit.Heading, stations[0].Heading)
	})
}

func TestPoseVectors(t *testing.T) {
	p := Pose{Heading: math.Pi / 2}
	d := p.Direction()
	n := p.LeftNormal()

	assert.InDelta(t, 0, d.X, tol)
	assert.InDelta(t, 1, d.Y, tol)
	assert.InDelta(t, -1, n.X, tol)
	assert.InDelta(t, 0, n.Y, tol)

	// The normal is the direction rotated a quarter turn left.
	assert.InDelta(t, 0, d.X*n.X+d.Y*n.Y, tol)
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "identity", in: 1, want: 1},
		{name: "wraps above pi", in: math.Pi + 1, want: 1 - math.Pi},
		{name: "wraps below minus pi", in: -math.Pi - 1, want: math.Pi - 1},
		{name: "many turns", in: 10 * math.Pi, want: 0},
		{name: "zero", in: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeAngle(tt.in), tol)
		})
	}
}

func TestAngleConversions(t *testing.T) {
	assert.InDelta(t, math.Pi, Radians(180), tol)
	assert.InDelta(t, 90, Degrees(math.Pi/2), tol)
}
