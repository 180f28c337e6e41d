package geo

import (
	"math"

	"github.com/ridelens/ridelens/pkg/util"
)

/*
BearingTo. initial bearing of the great-circle arc (p1,p2), degrees in [0,360).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {

	dLon := util.DegreeToRadians(p2Lon - p1Lon)

	lat1 := util.DegreeToRadians(p1Lat)
	lat2 := util.DegreeToRadians(p2Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brng := math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)

	return brng
}

// BearingChange. magnitude of the bearing change between two consecutive
// headings, wrapped the short way around: a raw difference above 180 becomes
// 360 minus it.
func BearingChange(prevBearing, nextBearing float64) float64 {
	diff := math.Abs(nextBearing - prevBearing)
	if diff > 180.0 {
		diff = 360.0 - diff
	}
	return diff
}
