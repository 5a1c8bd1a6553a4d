// Package geo places generated rivers into real-world coordinates.
// Rivers are built around the origin; exporting into a UTM zone is a
// pure translation to the zone's midpoint.
package geo

import (
	"fmt"

	"github.com/im7mortal/UTM"

	"github.com/vesselsim/rivergen/internal/geometry"
	"github.com/vesselsim/rivergen/internal/river"
)

// CentralMeridian is the longitude (degrees) of a zone's central
// meridian: zone 1 spans [-180,-174) with its meridian at -177.
func CentralMeridian(zone int) float64 {
	return float64(zone-1)*6 - 180 + 3
}

// ZoneMidpoint returns a representative point of a UTM zone: latitude
// 45N on the zone's central meridian, projected to WGS-84 UTM. On the
// central meridian the easting is exactly the false easting.
func ZoneMidpoint(zone int) (geometry.Point, error) {
	if zone < 1 || zone > 60 {
		return geometry.Point{}, fmt.Errorf("utm zone must be within [1,60], got %d", zone)
	}
	easting, northing, _, _, err := UTM.FromLatLon(45, CentralMeridian(zone), false)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("failed to project zone midpoint: %w", err)
	}
	return geometry.Point{X: easting, Y: northing}, nil
}

// ShiftToZone translates a built river so its origin lands on the
// midpoint of the given zone. Zone 0 is a no-op. This is pure
// post-processing; the builder itself always works at the origin.
func ShiftToZone(r *river.River, zone int) error {
	if zone == 0 {
		return nil
	}
	mid, err := ZoneMidpoint(zone)
	if err != nil {
		return err
	}
	r.Translate(mid.X, mid.Y)
	return nil
}
