package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(-7.7691, 110.3880),
		NewCoordinate(-7.7702, 110.3891),
		NewCoordinate(-7.7715, 110.3904),
	}

	encoded := PolylineFromCoords(coords)
	require.NotEmpty(t, encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(coords))

	// the codec keeps five decimal places
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestCoordsFromPolylineInvalid(t *testing.T) {
	_, err := CoordsFromPolyline("\x80")
	assert.Error(t, err)
}
