package geo

import (
	"github.com/golang/geo/s2"
)

// ProjectPointToSegment. spherical projection of p onto the segment (a, b),
// clamped to the segment endpoints.
func ProjectPointToSegment(a Coordinate, b Coordinate, p Coordinate) Coordinate {
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	pS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
	projection := s2.Project(pS2, aS2, bS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// PointSegmentDistance. distance in meters from p to the segment (a, b).
func PointSegmentDistance(a Coordinate, b Coordinate, p Coordinate) float64 {
	projectionPoint := ProjectPointToSegment(a, b, p)

	return CalculateHaversineDistance(p.GetLat(), p.GetLon(),
		projectionPoint.GetLat(), projectionPoint.GetLon())
}
