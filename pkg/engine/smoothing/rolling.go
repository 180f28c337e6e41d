package smoothing

import (
	"github.com/ridelens/ridelens/pkg/datastructure"
)

// RollingWindow. interior points become the mean of latitude/longitude (and
// speed, when every window member carries one) over a centered window clipped
// to the sequence bounds. first and last points pass through unchanged. when
// the sequence is not longer than the window this is a no-op copy.
func RollingWindow(points []datastructure.TrajectoryPoint, windowSize int) []datastructure.TrajectoryPoint {
	out := make([]datastructure.TrajectoryPoint, len(points))
	copy(out, points)

	if windowSize <= 1 || len(points) <= windowSize {
		return out
	}

	half := windowSize / 2
	for i := 1; i < len(points)-1; i++ {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(points)-1 {
			hi = len(points) - 1
		}

		sumLat, sumLon, sumSpeed := 0.0, 0.0, 0.0
		everyPointHasSpeed := true
		for j := lo; j <= hi; j++ {
			sumLat += points[j].Lat()
			sumLon += points[j].Lon()
			if speed, ok := points[j].Speed(); ok {
				sumSpeed += speed
			} else {
				everyPointHasSpeed = false
			}
		}

		n := float64(hi - lo + 1)
		smoothedPoint := points[i].WithPosition(sumLat/n, sumLon/n)
		if everyPointHasSpeed {
			smoothedPoint = smoothedPoint.WithSpeed(sumSpeed / n)
		}
		out[i] = smoothedPoint
	}

	return out
}
