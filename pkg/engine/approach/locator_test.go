package approach

import (
	"fmt"
	"math"
	"testing"

	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/geo"
	"github.com/ridelens/ridelens/pkg/timeparse"
	"github.com/ridelens/ridelens/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ladderEpochMs = int64(1737886091000)

// eleven points heading straight at a marker on the equator, 10 m steps,
// distances 100.2 down to 0.2 m. frames one apart, one second of wall time
// per frame when timestamps are on.
func ladderPoints(withTimes, withSpeeds bool) []datastructure.TrajectoryPoint {
	points := make([]datastructure.TrajectoryPoint, 0, 11)
	for i := 0; i < 11; i++ {
		dist := 100.2 - 10.0*float64(i)
		lat := util.RadiansToDegree(dist / 6371000.0)
		timestamp := ""
		if withTimes {
			timestamp = fmt.Sprintf("%d", ladderEpochMs+int64(i)*1000)
		}
		p := datastructure.NewTrajectoryPoint(i, timestamp, lat, 0)
		if withSpeeds {
			p = p.WithSpeed(float64(10 * i))
		}
		points = append(points, p)
	}
	return points
}

func ladderMarker(withTime bool) datastructure.ObjectMarker {
	timestamp := ""
	if withTime {
		timestamp = fmt.Sprintf("%d", ladderEpochMs+10*1000)
	}
	return datastructure.NewObjectMarker(10, timestamp, 0, 0, "cyclist")
}

func TestLocateLadder(t *testing.T) {
	loc := NewLocator()
	points := ladderPoints(false, false)
	marker := ladderMarker(false)

	result := loc.Locate(points, marker, []float64{50, 100, 75}, 30)

	require.Len(t, result, 3)

	// ascending by target distance
	assert.Equal(t, 50.0, result[0].TargetDistance())
	assert.Equal(t, 75.0, result[1].TargetDistance())
	assert.Equal(t, 100.0, result[2].TargetDistance())

	// 50 and 100 hit samples within the exact tolerance
	assert.False(t, result[0].Interpolated())
	assert.Equal(t, 5, result[0].FrameIndex())
	assert.False(t, result[2].Interpolated())
	assert.Equal(t, 0, result[2].FrameIndex())

	// 75 falls between samples and is interpolated
	require.True(t, result[1].Interpolated())
	recomputed := geo.CalculateHaversineDistance(result[1].Lat(), result[1].Lon(),
		marker.Lat(), marker.Lon())
	assert.InDelta(t, 75.0, recomputed, 75.0*1e-6)
	assert.Equal(t, 3, result[1].FrameIndex()) // round(2.52)

	// the marker sits due south of every ladder point
	for _, ap := range result {
		assert.InDelta(t, 180.0, ap.BearingToMarker(), 1e-3)
	}
}

func TestLocateFrameOffsets(t *testing.T) {
	loc := NewLocator()
	points := ladderPoints(false, false)
	marker := ladderMarker(false)

	result := loc.Locate(points, marker, []float64{100, 75}, 30)

	require.Len(t, result, 2)

	// exact point at frame 0, marker at frame 10
	assert.InDelta(t, 10.0/30.0, result[1].TimeOffsetSeconds(), 1e-9)

	// interpolated point keeps the fractional frame 2.52 in its offset
	assert.InDelta(t, (10.0-2.52)/30.0, result[0].TimeOffsetSeconds(), 1e-6)
}

func TestLocateTimestampOffsets(t *testing.T) {
	loc := NewLocator()
	points := ladderPoints(true, false)
	marker := ladderMarker(true)

	result := loc.Locate(points, marker, []float64{100, 75}, 30)

	require.Len(t, result, 2)

	exact := result[1]
	assert.InDelta(t, 10.0, exact.TimeOffsetSeconds(), 1e-9)
	assert.Equal(t, points[0].Timestamp(), exact.Timestamp())

	// the interpolated timestamp is an epoch-ms literal 52% between frames 2 and 3
	interpolated := result[0]
	parsed, err := timeparse.Parse(interpolated.Timestamp())
	require.NoError(t, err)
	assert.InDelta(t, float64(ladderEpochMs+2520), float64(parsed), 1.1)
	assert.InDelta(t, 7.48, interpolated.TimeOffsetSeconds(), 2e-3)
}

func TestLocateInterpolatesSpeed(t *testing.T) {
	loc := NewLocator()
	points := ladderPoints(false, true)
	marker := ladderMarker(false)

	result := loc.Locate(points, marker, []float64{50, 75}, 30)

	require.Len(t, result, 2)

	speed, ok := result[0].Speed()
	require.True(t, ok)
	assert.Equal(t, 50.0, speed)

	speed, ok = result[1].Speed()
	require.True(t, ok)
	assert.InDelta(t, util.LerpG(20.0, 30.0, 0.52), speed, 1e-6)
}

func TestLocateCausality(t *testing.T) {
	loc := NewLocator()
	points := ladderPoints(false, false)
	// marker placed mid-drive at frame 5
	marker := datastructure.NewObjectMarker(5, "", 0, 0, "cyclist")

	result := loc.Locate(points, marker, []float64{100, 25}, 30)

	// 25 m is only reached after the marker, so it must be absent
	require.Len(t, result, 1)
	assert.Equal(t, 100.0, result[0].TargetDistance())
}

func TestLocateTimestampOrdering(t *testing.T) {
	loc := NewLocator()
	points := ladderPoints(true, false)
	// bogus frame index, but a timestamp level with frame 5. with every
	// timestamp parsing, time order wins and the frame index is ignored.
	marker := datastructure.NewObjectMarker(0, fmt.Sprintf("%d", ladderEpochMs+5*1000),
		0, 0, "cyclist")

	result := loc.Locate(points, marker, []float64{75, 25}, 30)

	require.Len(t, result, 1)
	assert.Equal(t, 75.0, result[0].TargetDistance())
	assert.True(t, result[0].Interpolated())
}

func TestLocateFallsBackToFrameOrderUniformly(t *testing.T) {
	loc := NewLocator()
	points := ladderPoints(true, false)
	// one broken trajectory timestamp forces frame ordering for the whole
	// sequence, marker included
	points[8] = datastructure.NewTrajectoryPoint(8, "not-a-time",
		points[8].Lat(), points[8].Lon())
	marker := datastructure.NewObjectMarker(5, fmt.Sprintf("%d", ladderEpochMs+5*1000),
		0, 0, "cyclist")

	result := loc.Locate(points, marker, []float64{75, 25}, 30)

	require.Len(t, result, 1)
	assert.Equal(t, 75.0, result[0].TargetDistance())

	// both bracketing timestamps still parse, so the offset stays time-based
	assert.InDelta(t, 5.0-2.52, result[0].TimeOffsetSeconds(), 2e-3)
}

func TestLocateAbsentTargets(t *testing.T) {
	loc := NewLocator()
	points := ladderPoints(false, false)
	marker := ladderMarker(false)

	t.Run("target beyond the trajectory", func(t *testing.T) {
		result := loc.Locate(points, marker, []float64{300, 50}, 30)
		require.Len(t, result, 1)
		assert.Equal(t, 50.0, result[0].TargetDistance())
	})

	t.Run("no targets", func(t *testing.T) {
		assert.Empty(t, loc.Locate(points, marker, nil, 30))
	})

	t.Run("no points", func(t *testing.T) {
		assert.Empty(t, loc.Locate(nil, marker, []float64{50}, 30))
	})

	t.Run("marker before every point", func(t *testing.T) {
		early := datastructure.NewObjectMarker(-1, "", 0, 0, "cyclist")
		assert.Empty(t, loc.Locate(points, early, []float64{50}, 30))
	})
}

func TestLocateAtMostOnePerTarget(t *testing.T) {
	loc := NewLocator()
	points := ladderPoints(false, false)
	marker := ladderMarker(false)

	result := loc.Locate(points, marker, []float64{100, 100}, 30)
	require.Len(t, result, 1)
}

func TestLocateDefaultLadder(t *testing.T) {
	loc := NewLocator()

	// a long run in from 300 m out, 10 m steps
	points := make([]datastructure.TrajectoryPoint, 0, 31)
	for i := 0; i < 31; i++ {
		dist := 300.2 - 10.0*float64(i)
		lat := util.RadiansToDegree(dist / 6371000.0)
		points = append(points, datastructure.NewTrajectoryPoint(i, "", lat, 0))
	}
	marker := datastructure.NewObjectMarker(30, "", 0, 0, "cyclist")

	result := loc.Locate(points, marker, []float64{50, 100, 150, 200, 250}, 30)

	require.Len(t, result, 5)
	for i, want := range []float64{50, 100, 150, 200, 250} {
		assert.Equal(t, want, result[i].TargetDistance())
		assert.False(t, result[i].Interpolated())
		recomputed := geo.CalculateHaversineDistance(result[i].Lat(), result[i].Lon(),
			marker.Lat(), marker.Lon())
		assert.InDelta(t, want, recomputed, 1.0)
	}
}

func TestLocateObserverTracesFallback(t *testing.T) {
	failures := 0
	normalizer := timeparse.NewNormalizerWithObserver(
		func(raw string, kind timeparse.Kind, epochMs int64, err error) {
			if err != nil {
				failures++
			}
		})
	loc := NewLocatorWithNormalizer(normalizer)

	points := ladderPoints(false, false)
	marker := ladderMarker(false)

	_ = loc.Locate(points, marker, []float64{50}, 30)

	// the missing timestamps surface through the observer
	assert.Greater(t, failures, 0)
}

func TestLocateKeepsMathInBounds(t *testing.T) {
	loc := NewLocator()
	points := ladderPoints(false, false)
	marker := ladderMarker(false)

	result := loc.Locate(points, marker, []float64{50, 75, 100}, 30)
	for _, ap := range result {
		assert.False(t, math.IsNaN(ap.Lat()))
		assert.False(t, math.IsNaN(ap.Lon()))
		assert.GreaterOrEqual(t, ap.BearingToMarker(), 0.0)
		assert.Less(t, ap.BearingToMarker(), 360.0)
	}
}
