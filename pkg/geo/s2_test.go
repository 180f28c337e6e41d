package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectPointToSegment(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 0.01)

	t.Run("point beside the segment projects onto it", func(t *testing.T) {
		p := NewCoordinate(0.001, 0.005)
		proj := ProjectPointToSegment(a, b, p)
		assert.InDelta(t, 0.0, proj.Lat, 1e-6)
		assert.InDelta(t, 0.005, proj.Lon, 1e-6)
	})

	t.Run("point behind the start clamps to the start", func(t *testing.T) {
		p := NewCoordinate(0, -0.01)
		proj := ProjectPointToSegment(a, b, p)
		assert.InDelta(t, a.Lat, proj.Lat, 1e-9)
		assert.InDelta(t, a.Lon, proj.Lon, 1e-9)
	})
}

func TestPointSegmentDistance(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 0.01)
	p := NewCoordinate(0.001, 0.005)

	got := PointSegmentDistance(a, b, p)
	want := CalculateHaversineDistance(0.001, 0.005, 0, 0.005)
	assert.InDelta(t, want, got, 0.01)
}
