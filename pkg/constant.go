package pkg

// enum of smoothing_policy
type SmoothingPolicy uint8

const (
	ROLLING_WINDOW SmoothingPolicy = iota
	KALMAN
	UNKNOWN_POLICY
)

func GetSmoothingPolicy(policy string) SmoothingPolicy {
	switch policy {
	case "rolling_window":
		return ROLLING_WINDOW
	case "kalman":
		return KALMAN
	default:
		return UNKNOWN_POLICY
	}
}

type ManeuverKind uint8

const (
	HARD_BRAKING ManeuverKind = iota
	RAPID_ACCELERATION
	SHARP_TURN
)

func (m ManeuverKind) String() string {
	switch m {
	case HARD_BRAKING:
		return "hard_braking"
	case RAPID_ACCELERATION:
		return "rapid_acceleration"
	default:
		return "sharp_turn"
	}
}

const (
	// clip frame-rate presets. any positive rate is accepted, these are the two
	// rates the capture hardware ships with.
	FRAME_RATE_STANDARD = 30.0
	FRAME_RATE_HIGH     = 60.0

	// durations below this are degenerate, speed is defined as 0
	MIN_DURATION_SECONDS = 0.001

	MS_TO_KMH = 3.6

	HARD_BRAKING_THRESHOLD_MS2  = -3.0
	RAPID_ACCEL_THRESHOLD_MS2   = 2.5
	SHARP_TURN_ANGLE_DEGREES    = 30.0
	SPEED_PLAUSIBLE_MAX_KMH     = 200.0
	SPEED_SERIES_WINDOW_SIZE    = 5
	DEFAULT_ROLLING_WINDOW_SIZE = 5

	APPROACH_EXACT_TOLERANCE_METERS = 5.0
)

// reliability penalty bands. multiplicative, highest crossed band wins.
const (
	SPEED_BAND_EXTREME_KMH  = 200.0
	SPEED_BAND_HIGH_KMH     = 150.0
	SPEED_BAND_ELEVATED_KMH = 120.0

	SPEED_PENALTY_EXTREME  = 0.2
	SPEED_PENALTY_HIGH     = 0.6
	SPEED_PENALTY_ELEVATED = 0.8

	ACCEL_BAND_EXTREME_MS2  = 30.0
	ACCEL_BAND_HIGH_MS2     = 20.0
	ACCEL_BAND_ELEVATED_MS2 = 10.0

	ACCEL_PENALTY_EXTREME  = 0.1
	ACCEL_PENALTY_HIGH     = 0.4
	ACCEL_PENALTY_ELEVATED = 0.7
)

const (
	DEBUG = false
)

// DefaultApproachTargets. target distance ladder (meters) used when the caller
// does not supply one.
func DefaultApproachTargets() []float64 {
	return []float64{50, 100, 150, 200, 250}
}
