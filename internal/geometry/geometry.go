// Package geometry turns segment specifications into centerline
// stations and exit poses. All coordinates are planar meters; headings
// are radians, counterclockwise from the positive x axis, normalized
// to [-pi, pi).
package geometry

import "math"

// Point is a 2-D position in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Pose is the minimal state needed to continue a chain: a position and
// the heading of travel at that position.
type Pose struct {
	Pos     Point   `json:"pos"`
	Heading float64 `json:"heading"`
}

// Direction is the unit vector along the heading.
func (p Pose) Direction() Point {
	return Point{X: math.Cos(p.Heading), Y: math.Sin(p.Heading)}
}

// LeftNormal is the unit vector perpendicular to the heading, pointing
// to the left of the direction of travel. Lateral grid offsets are
// measured along it, so positive offsets are the left bank.
func (p Pose) LeftNormal() Point {
	return Point{X: -math.Sin(p.Heading), Y: math.Cos(p.Heading)}
}

// Kind discriminates the segment variants.
type Kind int

const (
	Straight Kind = iota
	Curved
)

func (k Kind) String() string {
	if k == Curved {
		return "curved"
	}
	return "straight"
}

// Spec describes one segment before it is traced. Straight segments
// use Length; curved segments use Radius, Angle (radians, > 0) and
// Sign (+1 bends left, -1 bends right).
type Spec struct {
	Kind   Kind
	Length float64
	Radius float64
	Angle  float64
	Sign   float64
}

// ArcLength is the along-centerline length of the segment.
func (s Spec) ArcLength() float64 {
	if s.Kind == Curved {
		return s.Radius * s.Angle
	}
	return s.Length
}

// Station is one sampled point on a centerline together with the local
// heading, which orients the lateral cross-section.
type Station struct {
	Pos     Point   `json:"pos"`
	Heading float64 `json:"heading"`
}

// Trace computes the stations of a segment entered at the given pose,
// spaced every `spacing` meters of arc length starting at the entry
// (s = 0) and truncated at the segment end, plus the exit pose.
//
// A curved segment shorter than one spacing degenerates to a single
// station at the exit pose. That is the only special case; it is not
// an error.
func Trace(spec Spec, entry Pose, spacing float64) ([]Station, Pose) {
	total := spec.ArcLength()
	exit := exitPose(spec, entry)

	if total < spacing {
		if spec.Kind == Curved {
			return []Station{{Pos: exit.Pos, Heading: exit.Heading}}, exit
		}
		return []Station{at(spec, entry, 0)}, exit
	}

	n := int(math.Floor(total/spacing)) + 1
	stations := make([]Station, n)
	for i := 0; i < n; i++ {
		s := float64(i) * spacing
		stations[i] = at(spec, entry, s)
	}
	return stations, exit
}

// at evaluates the centerline of spec at arc length s from the entry.
func at(spec Spec, entry Pose, s float64) Station {
	if spec.Kind == Straight {
		d := entry.Direction()
		return Station{
			Pos:     Point{X: entry.Pos.X + s*d.X, Y: entry.Pos.Y + s*d.Y},
			Heading: entry.Heading,
		}
	}

	// The circle center sits one radius to the side of the entry,
	// along the left normal for a left bend and opposite for a right
	// bend. The swept angle grows with arc length.
	center := circleCenter(spec, entry)
	theta := NormalizeAngle(entry.Heading + spec.Sign*s/spec.Radius)
	n := Point{X: -math.Sin(theta), Y: math.Cos(theta)}
	return Station{
		Pos: Point{
			X: center.X - spec.Sign*spec.Radius*n.X,
			Y: center.Y - spec.Sign*spec.Radius*n.Y,
		},
		Heading: theta,
	}
}

func circleCenter(spec Spec, entry Pose) Point {
	n := entry.LeftNormal()
	return Point{
		X: entry.Pos.X + spec.Sign*spec.Radius*n.X,
		Y: entry.Pos.Y + spec.Sign*spec.Radius*n.Y,
	}
}

func exitPose(spec Spec, entry Pose) Pose {
	if spec.Kind == Straight {
		d := entry.Direction()
		return Pose{
			Pos:     Point{X: entry.Pos.X + spec.Length*d.X, Y: entry.Pos.Y + spec.Length*d.Y},
			Heading: entry.Heading,
		}
	}
	st := at(spec, entry, spec.ArcLength())
	return Pose{Pos: st.Pos, Heading: st.Heading}
}

// NormalizeAngle wraps an angle into [-pi, pi) so headings stay bounded
// no matter how many segments a chain accumulates.
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }
