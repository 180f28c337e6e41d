package engine

import (
	"testing"

	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPoints() []datastructure.TrajectoryPoint {
	latStep := util.RadiansToDegree(10.0 / 6371000.0)
	points := make([]datastructure.TrajectoryPoint, 0, 8)
	for i := 0; i < 8; i++ {
		points = append(points, datastructure.NewTrajectoryPoint(i*30, "",
			float64(i)*latStep, 0))
	}
	return points
}

func TestEngineValidatesFrameRate(t *testing.T) {
	e := NewEngine(zap.NewNop())
	points := testPoints()
	marker := datastructure.NewObjectMarker(210, "", 0, 0, "sign")

	_, err := e.Profile(points, 0)
	require.Error(t, err)
	var uerr *util.Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, util.ErrBadParamInput, uerr.Code())

	_, err = e.AnnotateSpeeds(points, -30)
	assert.Error(t, err)

	_, err = e.DetectManeuvers(points, 0)
	assert.Error(t, err)

	_, err = e.LocateApproachPoints(points, marker, nil, 0)
	assert.Error(t, err)
}

func TestEngineProfile(t *testing.T) {
	e := NewEngine(zap.NewNop())

	profile, err := e.Profile(testPoints(), 30)
	require.NoError(t, err)
	require.Len(t, profile.Samples(), 7)
	assert.InDelta(t, 70.0, profile.TotalDistanceMeters(), 1e-6)
}

func TestEngineSmoothPolicies(t *testing.T) {
	e := NewEngine(zap.NewNop())
	points := testPoints()

	t.Run("rolling window with default size", func(t *testing.T) {
		out, err := e.Smooth(points, pkg.ROLLING_WINDOW, 0)
		require.NoError(t, err)
		assert.Len(t, out, len(points))
	})

	t.Run("kalman", func(t *testing.T) {
		out, err := e.Smooth(points, pkg.KALMAN, 0)
		require.NoError(t, err)
		assert.Len(t, out, len(points))
	})

	t.Run("unknown policy", func(t *testing.T) {
		_, err := e.Smooth(points, pkg.UNKNOWN_POLICY, 0)
		require.Error(t, err)
		var uerr *util.Error
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, util.ErrBadParamInput, uerr.Code())
	})
}

func TestEngineApproachDefaultsTargets(t *testing.T) {
	e := NewEngine(zap.NewNop())

	// run in from 260 m out so 50..250 are all reachable
	latStep := util.RadiansToDegree(10.0 / 6371000.0)
	points := make([]datastructure.TrajectoryPoint, 0, 27)
	for i := 0; i < 27; i++ {
		points = append(points, datastructure.NewTrajectoryPoint(i, "",
			float64(26-i)*latStep+latStep/50, 0))
	}
	marker := datastructure.NewObjectMarker(26, "", 0, 0, "sign")

	result, err := e.LocateApproachPoints(points, marker, nil, 30)
	require.NoError(t, err)
	require.Len(t, result, 5)
	assert.Equal(t, 50.0, result[0].TargetDistance())
	assert.Equal(t, 250.0, result[4].TargetDistance())
}

func TestEngineClosestApproach(t *testing.T) {
	e := NewEngine(zap.NewNop())

	t.Run("empty trajectory", func(t *testing.T) {
		_, ok := e.ClosestApproach(nil, datastructure.NewObjectMarker(0, "", 0, 0, ""))
		assert.False(t, ok)
	})

	t.Run("single point", func(t *testing.T) {
		points := []datastructure.TrajectoryPoint{
			datastructure.NewTrajectoryPoint(0, "", 0.001, 0),
		}
		marker := datastructure.NewObjectMarker(0, "", 0, 0, "sign")

		closest, ok := e.ClosestApproach(points, marker)
		require.True(t, ok)
		assert.Equal(t, 0, closest.SegmentIndex())
		assert.InDelta(t, 111.19, closest.DistanceMeters(), 0.1)
	})

	t.Run("marker beside the track", func(t *testing.T) {
		// driving east along the equator, marker offset north of the midpoint
		points := []datastructure.TrajectoryPoint{
			datastructure.NewTrajectoryPoint(0, "", 0, 0),
			datastructure.NewTrajectoryPoint(30, "", 0, 0.001),
			datastructure.NewTrajectoryPoint(60, "", 0, 0.002),
		}
		marker := datastructure.NewObjectMarker(60, "", 0.0005, 0.0005, "sign")

		closest, ok := e.ClosestApproach(points, marker)
		require.True(t, ok)
		assert.Equal(t, 0, closest.SegmentIndex())
		assert.InDelta(t, 0.0005, closest.Lon(), 1e-6)
		// ~55.6 m north of the track
		assert.InDelta(t, 0.0005*111194.9, closest.DistanceMeters(), 0.5)
	})
}
