package smoothing

import (
	"testing"

	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zigzagPoints() []datastructure.TrajectoryPoint {
	lats := []float64{0, 0.001, 0, 0.001, 0}
	points := make([]datastructure.TrajectoryPoint, 0, len(lats))
	for i, lat := range lats {
		points = append(points, datastructure.NewTrajectoryPoint(i, "", lat,
			float64(i)*0.0005))
	}
	return points
}

func TestRollingWindow(t *testing.T) {
	points := zigzagPoints()

	out := RollingWindow(points, 3)

	require.Len(t, out, len(points))

	// endpoints pass through
	assert.Equal(t, points[0].Lat(), out[0].Lat())
	assert.Equal(t, points[0].Lon(), out[0].Lon())
	assert.Equal(t, points[4].Lat(), out[4].Lat())
	assert.Equal(t, points[4].Lon(), out[4].Lon())

	// interior points get the centered mean
	assert.InDelta(t, (0+0.001+0)/3.0, out[1].Lat(), 1e-12)
	assert.InDelta(t, (0.001+0+0.001)/3.0, out[2].Lat(), 1e-12)
	assert.InDelta(t, 0.001, out[2].Lon(), 1e-12)

	// frame indices and timestamps survive smoothing
	for i := range out {
		assert.Equal(t, points[i].FrameIndex(), out[i].FrameIndex())
		assert.Equal(t, points[i].Timestamp(), out[i].Timestamp())
	}
}

func TestRollingWindowNoOp(t *testing.T) {
	points := zigzagPoints()

	t.Run("sequence no longer than the window", func(t *testing.T) {
		out := RollingWindow(points, 5)
		for i := range out {
			assert.Equal(t, points[i], out[i])
		}
	})

	t.Run("window of one", func(t *testing.T) {
		out := RollingWindow(points, 1)
		for i := range out {
			assert.Equal(t, points[i], out[i])
		}
	})

	t.Run("empty sequence", func(t *testing.T) {
		out := RollingWindow(nil, 3)
		assert.Empty(t, out)
	})
}

func TestRollingWindowSpeed(t *testing.T) {
	t.Run("all points carry speed", func(t *testing.T) {
		points := zigzagPoints()
		for i := range points {
			points[i] = points[i].WithSpeed(float64(10 * (i + 1)))
		}

		out := RollingWindow(points, 3)

		speed, ok := out[1].Speed()
		require.True(t, ok)
		assert.InDelta(t, (10.0+20.0+30.0)/3.0, speed, 1e-12)
	})

	t.Run("one speed missing keeps originals", func(t *testing.T) {
		points := zigzagPoints()
		points[0] = points[0].WithSpeed(10)
		points[1] = points[1].WithSpeed(20)
		// points[2] has no speed

		out := RollingWindow(points, 3)

		speed, ok := out[1].Speed()
		require.True(t, ok)
		assert.Equal(t, 20.0, speed)
	})
}

func TestRollingWindowDoesNotMutateInput(t *testing.T) {
	points := zigzagPoints()
	original := make([]datastructure.TrajectoryPoint, len(points))
	copy(original, points)

	_ = RollingWindow(points, 3)

	for i := range points {
		assert.Equal(t, original[i], points[i])
	}
}
