package smoothing

const (
	// fixed random-walk filter tuning. no velocity model, so the filter can
	// only smooth, never extrapolate.
	KALMAN_PROCESS_NOISE_Q      = 1e-5
	KALMAN_MEASUREMENT_NOISE_R  = 5e-5
	KALMAN_INITIAL_COVARIANCE_P = 1.0
)
