package smoothing

import (
	"math"
	"testing"

	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noisyLine() []datastructure.TrajectoryPoint {
	// straight line with alternating gps jitter
	points := make([]datastructure.TrajectoryPoint, 0, 10)
	for i := 0; i < 10; i++ {
		jitter := 0.00004
		if i%2 == 1 {
			jitter = -jitter
		}
		points = append(points, datastructure.NewTrajectoryPoint(i, "",
			float64(i)*0.0001+jitter, float64(i)*0.0001-jitter))
	}
	return points
}

func TestKalmanSmooth(t *testing.T) {
	points := noisyLine()

	out := KalmanSmooth(points)

	require.Len(t, out, len(points))

	// the first observation seeds the filter and is emitted unchanged
	assert.Equal(t, points[0].Lat(), out[0].Lat())
	assert.Equal(t, points[0].Lon(), out[0].Lon())

	for i := range out {
		assert.Equal(t, points[i].FrameIndex(), out[i].FrameIndex())
	}
}

// the filter state may only move from the previous estimate toward the new
// measurement, never past it.
func TestKalmanSmoothNeverOvershoots(t *testing.T) {
	points := noisyLine()

	out := KalmanSmooth(points)

	for i := 1; i < len(out); i++ {
		prev := out[i-1].Lat()
		meas := points[i].Lat()
		got := out[i].Lat()

		lower := math.Min(prev, meas) - 1e-12
		upper := math.Max(prev, meas) + 1e-12
		assert.GreaterOrEqual(t, got, lower, "step %d", i)
		assert.LessOrEqual(t, got, upper, "step %d", i)
	}
}

func TestKalmanSmoothNoOp(t *testing.T) {
	t.Run("two points", func(t *testing.T) {
		points := noisyLine()[:2]
		out := KalmanSmooth(points)
		require.Len(t, out, 2)
		assert.Equal(t, points[0], out[0])
		assert.Equal(t, points[1], out[1])
	})

	t.Run("single point", func(t *testing.T) {
		points := noisyLine()[:1]
		out := KalmanSmooth(points)
		require.Len(t, out, 1)
		assert.Equal(t, points[0], out[0])
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, KalmanSmooth(nil))
	})
}

func TestKalmanSmoothDoesNotMutateInput(t *testing.T) {
	points := noisyLine()
	original := make([]datastructure.TrajectoryPoint, len(points))
	copy(original, points)

	_ = KalmanSmooth(points)

	for i := range points {
		assert.Equal(t, original[i], points[i])
	}
}

func TestScalarKalmanConvergesOnConstant(t *testing.T) {
	filter := newScalarKalman(5.0)
	var state float64
	for i := 0; i < 50; i++ {
		state = filter.update(10.0)
	}
	// fed a constant, the state must settle on it
	assert.InDelta(t, 10.0, state, 1e-3)
}
