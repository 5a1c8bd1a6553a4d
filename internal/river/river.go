package river

import (
	"fmt"

	"github.com/vesselsim/rivergen/internal/field"
	"github.com/vesselsim/rivergen/internal/geometry"
	"github.com/vesselsim/rivergen/internal/grid"
)

// Descriptor records the sampled parameters of one segment for
// reporting. Angle is in degrees; Sign is +1 for a left bend, -1 for a
// right bend. Length covers straight segments, Radius/Angle/Sign
// curved ones.
type Descriptor struct {
	Kind   string  `json:"kind"`
	Length float64 `json:"length,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Angle  float64 `json:"angle,omitempty"`
	Sign   float64 `json:"sign,omitempty"`
}

func (d Descriptor) String() string {
	if d.Kind == geometry.Curved.String() {
		side := "left"
		if d.Sign < 0 {
			side = "right"
		}
		return fmt.Sprintf("curved(radius=%.2f, angle=%.2f, turn=%s)", d.Radius, d.Angle, side)
	}
	return fmt.Sprintf("straight(length=%.2f)", d.Length)
}

// Segment is one built stretch of the river: its descriptor, the
// traced stations, the lateral grid and the assigned fields. Points
// and Fields are station-major and share the grid's lateral order.
type Segment struct {
	Descriptor Descriptor         `json:"descriptor"`
	Entry      geometry.Pose      `json:"entry"`
	Exit       geometry.Pose      `json:"exit"`
	Stations   []geometry.Station `json:"stations"`
	Points     [][]grid.Point     `json:"points"`
	Fields     [][]field.Values   `json:"fields"`
}

// River is the assembled chain. It is created once per build and never
// mutated afterwards, except for the optional whole-river translation
// applied before export.
type River struct {
	Seed     int64     `json:"seed"`
	Segments []Segment `json:"segments"`
}

// StationCount is the total number of stations across all segments.
func (r *River) StationCount() int {
	n := 0
	for _, s := range r.Segments {
		n += len(s.Stations)
	}
	return n
}

// PointCount is the total number of grid points across all segments.
func (r *River) PointCount() int {
	n := 0
	for _, s := range r.Segments {
		for _, row := range s.Points {
			n += len(row)
		}
	}
	return n
}

// Descriptors returns the sampled segment parameters in chain order.
func (r *River) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.Segments))
	for i, s := range r.Segments {
		out[i] = s.Descriptor
	}
	return out
}

// Visit walks every grid point in export order: segments in chain
// order, stations within a segment, lateral offsets left to right.
func (r *River) Visit(fn func(p grid.Point, v field.Values)) {
	for _, s := range r.Segments {
		for i, row := range s.Points {
			for k, p := range row {
				fn(p, s.Fields[i][k])
			}
		}
	}
}

// Translate shifts every position in the river by (dx, dy). Headings
// and fields are unaffected. Used for the UTM zone shift.
func (r *River) Translate(dx, dy float64) {
	for si := range r.Segments {
		s := &r.Segments[si]
		s.Entry.Pos.X += dx
		s.Entry.Pos.Y += dy
		s.Exit.Pos.X += dx
		s.Exit.Pos.Y += dy
		for i := range s.Stations {
			s.Stations[i].Pos.X += dx
			s.Stations[i].Pos.Y += dy
		}
		for i := range s.Points {
			for k := range s.Points[i] {
				s.Points[i][k].Pos.X += dx
				s.Points[i][k].Pos.Y += dy
			}
		}
	}
}
