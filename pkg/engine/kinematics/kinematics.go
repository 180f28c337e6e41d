package kinematics

import (
	"sort"

	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/geo"
	"github.com/ridelens/ridelens/pkg/util"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BetweenPoints. kinematics of the transition (p1, p2). duration is
// |Δframe|/frameRate; with a degenerate duration (< 1 ms) speed is defined
// as 0 instead of blowing up.
func BetweenPoints(p1, p2 datastructure.TrajectoryPoint, frameRate float64) datastructure.KinematicSample {
	return betweenPoints(p1, p2, frameRate, 0, false)
}

// BetweenPointsWithPrevSpeed. same as BetweenPoints but with the previous
// pair's speed supplied, so the sample also carries acceleration and the
// acceleration reliability bands apply.
func BetweenPointsWithPrevSpeed(p1, p2 datastructure.TrajectoryPoint, frameRate,
	prevSpeedMS float64) datastructure.KinematicSample {
	return betweenPoints(p1, p2, frameRate, prevSpeedMS, true)
}

func betweenPoints(p1, p2 datastructure.TrajectoryPoint, frameRate,
	prevSpeedMS float64, hasPrev bool) datastructure.KinematicSample {

	dist := geo.CalculateHaversineDistance(p1.Lat(), p1.Lon(), p2.Lat(), p2.Lon())
	duration := float64(util.Abs(p2.FrameIndex()-p1.FrameIndex())) / frameRate

	speedMS := 0.0
	if duration >= pkg.MIN_DURATION_SECONDS {
		speedMS = dist / duration
	}
	speedKmh := speedMS * pkg.MS_TO_KMH

	bearing := geo.BearingTo(p1.Lat(), p1.Lon(), p2.Lat(), p2.Lon())

	reliability := speedReliability(speedKmh)

	sample := datastructure.NewKinematicSample(dist, duration, speedMS, speedKmh,
		bearing, reliability)

	if hasPrev {
		accel := 0.0
		if duration >= pkg.MIN_DURATION_SECONDS {
			accel = (speedMS - prevSpeedMS) / duration
		}
		sample = sample.WithAcceleration(accel).
			WithReliability(reliability * accelReliability(accel))
	}

	return sample
}

func speedReliability(speedKmh float64) float64 {
	switch {
	case speedKmh > pkg.SPEED_BAND_EXTREME_KMH:
		return pkg.SPEED_PENALTY_EXTREME
	case speedKmh > pkg.SPEED_BAND_HIGH_KMH:
		return pkg.SPEED_PENALTY_HIGH
	case speedKmh > pkg.SPEED_BAND_ELEVATED_KMH:
		return pkg.SPEED_PENALTY_ELEVATED
	default:
		return 1.0
	}
}

func accelReliability(accelMS2 float64) float64 {
	magnitude := accelMS2
	if magnitude < 0 {
		magnitude = -magnitude
	}
	switch {
	case magnitude > pkg.ACCEL_BAND_EXTREME_MS2:
		return pkg.ACCEL_PENALTY_EXTREME
	case magnitude > pkg.ACCEL_BAND_HIGH_MS2:
		return pkg.ACCEL_PENALTY_HIGH
	case magnitude > pkg.ACCEL_BAND_ELEVATED_MS2:
		return pkg.ACCEL_PENALTY_ELEVATED
	default:
		return 1.0
	}
}

// Profile. full per-pair sample sequence plus cumulative distances, the
// 5-point rolling-mean speed series (first value duplicated so the series has
// one entry per trajectory point) and aggregates over plausible samples only.
// implausible samples stay in the raw series, they are just excluded from
// aggregates. fewer than 2 points yields an empty profile, not an error.
func Profile(points []datastructure.TrajectoryPoint, frameRate float64) *datastructure.SpeedProfile {
	if len(points) < 2 {
		return datastructure.NewSpeedProfile([]datastructure.KinematicSample{},
			[]float64{}, 0, []float64{}, 0, 0, 0, 0)
	}

	samples := make([]datastructure.KinematicSample, 0, len(points)-1)
	cumulative := make([]float64, 0, len(points)-1)
	total := 0.0

	for i := 0; i < len(points)-1; i++ {
		var sample datastructure.KinematicSample
		if i == 0 {
			sample = BetweenPoints(points[i], points[i+1], frameRate)
		} else {
			sample = BetweenPointsWithPrevSpeed(points[i], points[i+1], frameRate,
				samples[i-1].SpeedMS())
		}
		samples = append(samples, sample)
		total += sample.DistanceMeters()
		cumulative = append(cumulative, total)
	}

	speeds := make([]float64, 0, len(points))
	speeds = append(speeds, samples[0].SpeedKmh())
	for _, sample := range samples {
		speeds = append(speeds, sample.SpeedKmh())
	}
	smoothed := util.RollingMeanG(speeds, pkg.SPEED_SERIES_WINDOW_SIZE)

	maxSpeed, avgSpeed, medianSpeed, p85Speed := aggregateSpeeds(samples)

	return datastructure.NewSpeedProfile(samples, cumulative, total, smoothed,
		maxSpeed, avgSpeed, medianSpeed, p85Speed)
}

func aggregateSpeeds(samples []datastructure.KinematicSample) (float64, float64, float64, float64) {
	plausible := make([]float64, 0, len(samples))
	for _, sample := range samples {
		if sample.SpeedKmh() > 0 && sample.SpeedKmh() < pkg.SPEED_PLAUSIBLE_MAX_KMH {
			plausible = append(plausible, sample.SpeedKmh())
		}
	}
	if len(plausible) == 0 {
		return 0, 0, 0, 0
	}

	maxSpeed := floats.Max(plausible)
	avgSpeed := stat.Mean(plausible, nil)

	sort.Float64s(plausible)
	medianSpeed := stat.Quantile(0.5, stat.Empirical, plausible, nil)
	p85Speed := stat.Quantile(0.85, stat.Empirical, plausible, nil)

	return maxSpeed, avgSpeed, medianSpeed, p85Speed
}

// AnnotateSpeeds. fresh trajectory with the per-pair speed attached to each
// point (the pair ending at the point; the first point duplicates the first
// pair). input is never mutated.
func AnnotateSpeeds(points []datastructure.TrajectoryPoint, frameRate float64) []datastructure.TrajectoryPoint {
	out := make([]datastructure.TrajectoryPoint, len(points))
	copy(out, points)
	if len(points) < 2 {
		return out
	}

	prevSpeedMS := 0.0
	for i := 0; i < len(points)-1; i++ {
		var sample datastructure.KinematicSample
		if i == 0 {
			sample = BetweenPoints(points[i], points[i+1], frameRate)
			out[0] = points[0].WithSpeed(sample.SpeedKmh())
		} else {
			sample = BetweenPointsWithPrevSpeed(points[i], points[i+1], frameRate, prevSpeedMS)
		}
		out[i+1] = points[i+1].WithSpeed(sample.SpeedKmh())
		prevSpeedMS = sample.SpeedMS()
	}
	return out
}
