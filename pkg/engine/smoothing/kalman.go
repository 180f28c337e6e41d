package smoothing

import (
	"github.com/ridelens/ridelens/pkg/datastructure"
)

// scalar random-walk kalman filter for one coordinate axis
type scalarKalman struct {
	state float64
	p     float64 // error covariance
}

func newScalarKalman(initialObservation float64) *scalarKalman {
	return &scalarKalman{
		state: initialObservation,
		p:     KALMAN_INITIAL_COVARIANCE_P,
	}
}

func (k *scalarKalman) update(measurement float64) float64 {
	k.p += KALMAN_PROCESS_NOISE_Q
	gain := k.p / (k.p + KALMAN_MEASUREMENT_NOISE_R)
	k.state += gain * (measurement - k.state)
	k.p = (1 - gain) * k.p
	return k.state
}

// KalmanSmooth. independent scalar filters per axis. state initializes from
// the first observation, which is emitted unchanged. sequences of length ≤ 2
// come back as a no-op copy.
func KalmanSmooth(points []datastructure.TrajectoryPoint) []datastructure.TrajectoryPoint {
	out := make([]datastructure.TrajectoryPoint, len(points))
	copy(out, points)

	if len(points) <= 2 {
		return out
	}

	latFilter := newScalarKalman(points[0].Lat())
	lonFilter := newScalarKalman(points[0].Lon())

	for i := 1; i < len(points); i++ {
		out[i] = points[i].WithPosition(
			latFilter.update(points[i].Lat()),
			lonFilter.update(points[i].Lon()),
		)
	}

	return out
}
