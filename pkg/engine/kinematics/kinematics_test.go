package kinematics

import (
	"testing"

	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// points heading due north along a meridian, stepMeters apart and frameStep
// frames apart, so every pair has the same physical and frame spacing.
func meridianPoints(n int, stepMeters float64, frameStep int) []datastructure.TrajectoryPoint {
	latStep := util.RadiansToDegree(stepMeters / 6371000.0)
	points := make([]datastructure.TrajectoryPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, datastructure.NewTrajectoryPoint(i*frameStep, "",
			float64(i)*latStep, 0))
	}
	return points
}

func TestBetweenPointsConstantSpeed(t *testing.T) {
	// 10 m per second of footage at 30 fps
	points := meridianPoints(6, 10, 30)

	first := BetweenPoints(points[0], points[1], 30)
	for i := 1; i < len(points)-1; i++ {
		sample := BetweenPoints(points[i], points[i+1], 30)
		assert.InDelta(t, first.SpeedMS(), sample.SpeedMS(), 1e-9)
		assert.InDelta(t, 36.0, sample.SpeedKmh(), 1e-6)
		assert.InDelta(t, 1.0, sample.DurationSeconds(), 1e-12)
		assert.InDelta(t, 0.0, sample.BearingDegrees(), 1e-6)
	}
}

func TestBetweenPointsFrameOrderIndependent(t *testing.T) {
	points := meridianPoints(2, 25, 30)

	forward := BetweenPoints(points[0], points[1], 30)
	backward := BetweenPoints(points[1], points[0], 30)

	assert.InDelta(t, forward.DurationSeconds(), backward.DurationSeconds(), 1e-12)
	assert.InDelta(t, forward.SpeedMS(), backward.SpeedMS(), 1e-9)
}

func TestBetweenPointsDegenerateDuration(t *testing.T) {
	p1 := datastructure.NewTrajectoryPoint(10, "", 0, 0)
	p2 := datastructure.NewTrajectoryPoint(10, "", 0.001, 0.001)

	sample := BetweenPoints(p1, p2, 30)
	assert.Greater(t, sample.DistanceMeters(), 0.0)
	assert.Equal(t, 0.0, sample.SpeedMS())
	assert.Equal(t, 0.0, sample.SpeedKmh())

	withPrev := BetweenPointsWithPrevSpeed(p1, p2, 30, 12.0)
	accel, ok := withPrev.Acceleration()
	require.True(t, ok)
	assert.Equal(t, 0.0, accel)
}

func TestReliabilitySpeedBands(t *testing.T) {
	testCases := []struct {
		name       string
		stepMeters float64
		want       float64
	}{
		{name: "city speed keeps full reliability", stepMeters: 50.0 / 3.6, want: 1.0},
		{name: "above 120 kmh", stepMeters: 130.0 / 3.6, want: 0.8},
		{name: "above 150 kmh", stepMeters: 160.0 / 3.6, want: 0.6},
		{name: "250 kmh is extreme", stepMeters: 250.0 / 3.6, want: 0.2},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			points := meridianPoints(2, tt.stepMeters, 30)
			sample := BetweenPoints(points[0], points[1], 30)
			assert.Equal(t, tt.want, sample.Reliability())
		})
	}
}

func TestReliabilityAccelerationBands(t *testing.T) {
	// 15 m in one second from a standing start: 54 km/h but 15 m/s2
	points := meridianPoints(2, 15, 30)
	sample := BetweenPointsWithPrevSpeed(points[0], points[1], 30, 0)

	accel, ok := sample.Acceleration()
	require.True(t, ok)
	assert.InDelta(t, 15.0, accel, 1e-6)
	assert.InDelta(t, 0.7, sample.Reliability(), 1e-9)

	// no acceleration without a previous speed
	_, ok = BetweenPoints(points[0], points[1], 30).Acceleration()
	assert.False(t, ok)
}

func TestProfile(t *testing.T) {
	points := meridianPoints(6, 10, 30)

	profile := Profile(points, 30)

	require.Len(t, profile.Samples(), 5)
	require.Len(t, profile.CumulativeMeters(), 5)
	require.Len(t, profile.SmoothedSpeedsKmh(), 6)

	assert.InDelta(t, 50.0, profile.TotalDistanceMeters(), 1e-6)
	for i, cum := range profile.CumulativeMeters() {
		assert.InDelta(t, float64(i+1)*10.0, cum, 1e-6)
	}
	for _, speed := range profile.SmoothedSpeedsKmh() {
		assert.InDelta(t, 36.0, speed, 1e-6)
	}
	assert.InDelta(t, 36.0, profile.MaxSpeedKmh(), 1e-6)
	assert.InDelta(t, 36.0, profile.AvgSpeedKmh(), 1e-6)
	assert.InDelta(t, 36.0, profile.MedianSpeedKmh(), 1e-6)
}

func TestProfileExcludesImplausibleFromAggregates(t *testing.T) {
	latStep := util.RadiansToDegree(10.0 / 6371000.0)
	bigStep := util.RadiansToDegree(300.0 / 6371000.0)
	points := []datastructure.TrajectoryPoint{
		datastructure.NewTrajectoryPoint(0, "", 0, 0),
		datastructure.NewTrajectoryPoint(30, "", latStep, 0),
		// gps glitch, 300 m in one second
		datastructure.NewTrajectoryPoint(60, "", latStep+bigStep, 0),
		datastructure.NewTrajectoryPoint(90, "", 2*latStep+bigStep, 0),
	}

	profile := Profile(points, 30)

	require.Len(t, profile.Samples(), 3)
	assert.Greater(t, profile.Samples()[1].SpeedKmh(), 200.0)

	// the glitch stays in the raw series but never reaches the aggregates
	assert.InDelta(t, 36.0, profile.MaxSpeedKmh(), 1e-6)
	assert.InDelta(t, 36.0, profile.AvgSpeedKmh(), 1e-6)
}

func TestProfileTooShort(t *testing.T) {
	profile := Profile(meridianPoints(1, 10, 30), 30)
	assert.Empty(t, profile.Samples())
	assert.Empty(t, profile.CumulativeMeters())
	assert.Empty(t, profile.SmoothedSpeedsKmh())
	assert.Equal(t, 0.0, profile.TotalDistanceMeters())
}

func TestAnnotateSpeeds(t *testing.T) {
	points := meridianPoints(4, 10, 30)

	annotated := AnnotateSpeeds(points, 30)

	require.Len(t, annotated, 4)
	for i, p := range annotated {
		speed, ok := p.Speed()
		require.True(t, ok, "point %d should carry a speed", i)
		assert.InDelta(t, 36.0, speed, 1e-6)
	}

	// inputs stay untouched
	for _, p := range points {
		_, ok := p.Speed()
		assert.False(t, ok)
	}
}
