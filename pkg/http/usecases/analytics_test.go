package usecases

import (
	"strconv"
	"testing"

	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/engine"
	"github.com/ridelens/ridelens/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testEpochMs = int64(1737886091000)

// ridePoints. straight run south along a meridian, 10 m and 1 s between
// frames at 30 fps.
func ridePoints(n int) []datastructure.TrajectoryPoint {
	latStep := util.RadiansToDegree(10.0 / 6371000.0)

	points := make([]datastructure.TrajectoryPoint, 0, n)
	for i := 0; i < n; i++ {
		timestamp := strconv.FormatInt(testEpochMs+int64(i)*1000, 10)
		points = append(points, datastructure.NewTrajectoryPoint(i*30, timestamp,
			-float64(i)*latStep, 0))
	}
	return points
}

func newTestService(t *testing.T) *AnalyticsService {
	t.Helper()
	return NewAnalyticsService(zap.NewNop(), engine.NewEngine(zap.NewNop()))
}

func TestSmoothPolicies(t *testing.T) {
	service := newTestService(t)
	points := ridePoints(9)

	testCases := []struct {
		name   string
		policy string
	}{
		{
			name:   "rolling window",
			policy: "rolling_window",
		},
		{
			name:   "kalman",
			policy: "kalman",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			smoothed, trackPolyline, err := service.Smooth(points, tc.policy, 0)
			require.NoError(t, err)

			assert.Len(t, smoothed, len(points))
			assert.NotEmpty(t, trackPolyline)
			for i, p := range smoothed {
				assert.Equal(t, points[i].FrameIndex(), p.FrameIndex())
			}
		})
	}
}

func TestSmoothRejectsUnknownPolicy(t *testing.T) {
	service := newTestService(t)

	_, _, err := service.Smooth(ridePoints(5), "bogus", 0)
	require.Error(t, err)
	require.ErrorIs(t, err, ERRUNKNOWNPOLICY)

	var uerr *util.Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, util.ErrBadParamInput, uerr.Code())
}

func TestClosestApproachEmptyTrajectory(t *testing.T) {
	service := newTestService(t)
	marker := datastructure.NewObjectMarker(0, "", 0, 0, "stop sign")

	_, found, err := service.ClosestApproach(nil, marker)
	require.Error(t, err)
	require.ErrorIs(t, err, ERREMPTYTRAJECTORY)
	assert.False(t, found)
}

func TestBatchAnalyze(t *testing.T) {
	service := newTestService(t)

	goodPoints := ridePoints(8)
	last := goodPoints[len(goodPoints)-1]
	marker := datastructure.NewObjectMarker(last.FrameIndex(), last.Timestamp(),
		last.Lat(), last.Lon(), "stop sign")

	clips := []*datastructure.Clip{
		datastructure.NewClip("clip-a", pkg.FRAME_RATE_STANDARD, goodPoints,
			[]datastructure.ObjectMarker{marker}),
		datastructure.NewClip("clip-b", -1, ridePoints(5), nil),
		datastructure.NewClip("", pkg.FRAME_RATE_STANDARD, ridePoints(5), nil),
	}

	summaries := service.BatchAnalyze(clips)
	require.Len(t, summaries, 3)

	// input order survives the pool fan-out
	assert.Equal(t, "clip-a", summaries[0].ClipId())
	require.NoError(t, summaries[0].Err())
	require.NotNil(t, summaries[0].Profile())
	assert.InDelta(t, 36.0, summaries[0].Profile().MaxSpeedKmh(), 1e-6)
	require.NotNil(t, summaries[0].Report())
	require.Len(t, summaries[0].Approaches(), 1)
	assert.Equal(t, "stop sign", summaries[0].Approaches()[0].Marker().Label())
	assert.NotEmpty(t, summaries[0].Approaches()[0].Points())

	// bad frame rate fails that clip only
	assert.Equal(t, "clip-b", summaries[1].ClipId())
	require.Error(t, summaries[1].Err())
	var uerr *util.Error
	require.ErrorAs(t, summaries[1].Err(), &uerr)
	assert.Equal(t, util.ErrBadParamInput, uerr.Code())

	// missing clip id gets generated
	assert.NotEmpty(t, summaries[2].ClipId())
	assert.Len(t, summaries[2].ClipId(), 36)
	require.NoError(t, summaries[2].Err())
}

func TestBatchAnalyzeEmpty(t *testing.T) {
	service := newTestService(t)

	summaries := service.BatchAnalyze(nil)
	assert.Empty(t, summaries)
}
