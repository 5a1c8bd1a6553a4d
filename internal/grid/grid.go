// Package grid lays the lateral cross-sections over a traced
// centerline. Lateral spacing equals the along-centerline spacing, so
// a segment's grid is close to square cells away from curves.
package grid

import (
	"github.com/vesselsim/rivergen/internal/geometry"
)

// Point is one grid node: a global position plus the signed lateral
// offset it was placed at. Positive offsets are left of the direction
// of travel.
type Point struct {
	Pos    geometry.Point `json:"pos"`
	Offset float64        `json:"offset"`
}

// Build places `points` nodes across every station, centered on the
// centerline and aligned with the local perpendicular. Odd counts put
// one node exactly on the centerline; even counts straddle it
// symmetrically. The returned slice is station-major.
func Build(stations []geometry.Station, points int, spacing float64) [][]Point {
	out := make([][]Point, len(stations))
	for i, st := range stations {
		pose := geometry.Pose{Pos: st.Pos, Heading: st.Heading}
		n := pose.LeftNormal()

		row := make([]Point, points)
		for k := 0; k < points; k++ {
			// Offsets run from -(points-1)/2 to +(points-1)/2
			// spacings; for even counts these are half-integer
			// multiples, so no node sits on the centerline.
			u := (float64(k) - float64(points-1)/2) * spacing
			row[k] = Point{
				Pos: geometry.Point{
					X: st.Pos.X + u*n.X,
					Y: st.Pos.Y + u*n.Y,
				},
				Offset: u,
			}
		}
		out[i] = row
	}
	return out
}
