package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. google encoded polyline of a coordinate sequence, used
// by the API and the analyzer to ship track geometry compactly.
func PolylineFromCoords(coords []Coordinate) string {
	flatCoords := make([][]float64, len(coords))
	for i, c := range coords {
		flatCoords[i] = []float64{c.GetLat(), c.GetLon()}
	}
	return string(polyline.EncodeCoords(flatCoords))
}

// CoordsFromPolyline. decode an encoded polyline back into coordinates.
func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	flatCoords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, len(flatCoords))
	for i, c := range flatCoords {
		coords[i] = NewCoordinate(c[0], c[1])
	}
	return coords, nil
}
