package datastructure

// KinematicSample. derived kinematics of one point transition. duration always
// comes from the frame-index delta and the frame rate, never from timestamps.
type KinematicSample struct {
	distanceMeters  float64
	durationSeconds float64
	speedMS         float64
	speedKmh        float64
	bearingDegrees  float64
	accelerationMS2 float64
	hasAcceleration bool
	reliability     float64
}

func NewKinematicSample(distanceMeters, durationSeconds, speedMS, speedKmh,
	bearingDegrees, reliability float64) KinematicSample {
	return KinematicSample{
		distanceMeters:  distanceMeters,
		durationSeconds: durationSeconds,
		speedMS:         speedMS,
		speedKmh:        speedKmh,
		bearingDegrees:  bearingDegrees,
		reliability:     reliability,
	}
}

func (k KinematicSample) DistanceMeters() float64 {
	return k.distanceMeters
}

func (k KinematicSample) DurationSeconds() float64 {
	return k.durationSeconds
}

func (k KinematicSample) SpeedMS() float64 {
	return k.speedMS
}

func (k KinematicSample) SpeedKmh() float64 {
	return k.speedKmh
}

func (k KinematicSample) BearingDegrees() float64 {
	return k.bearingDegrees
}

func (k KinematicSample) Acceleration() (float64, bool) {
	return k.accelerationMS2, k.hasAcceleration
}

func (k KinematicSample) Reliability() float64 {
	return k.reliability
}

func (k KinematicSample) WithAcceleration(accelerationMS2 float64) KinematicSample {
	k.accelerationMS2 = accelerationMS2
	k.hasAcceleration = true
	return k
}

func (k KinematicSample) WithReliability(reliability float64) KinematicSample {
	k.reliability = reliability
	return k
}

// SpeedProfile. whole-trajectory view: the raw per-pair samples plus cumulative
// distances and aggregates. aggregates only cover plausible samples
// (0 < speed < 200 km/h), the raw series keeps everything.
type SpeedProfile struct {
	samples        []KinematicSample
	cumulative     []float64 // meters driven up to and including sample i
	totalDistance  float64
	smoothedSpeeds []float64 // km/h, same length as the trajectory
	maxSpeedKmh    float64
	avgSpeedKmh    float64
	medianSpeedKmh float64
	p85SpeedKmh    float64
}

func NewSpeedProfile(samples []KinematicSample, cumulative []float64, totalDistance float64,
	smoothedSpeeds []float64, maxSpeedKmh, avgSpeedKmh, medianSpeedKmh, p85SpeedKmh float64) *SpeedProfile {
	return &SpeedProfile{
		samples:        samples,
		cumulative:     cumulative,
		totalDistance:  totalDistance,
		smoothedSpeeds: smoothedSpeeds,
		maxSpeedKmh:    maxSpeedKmh,
		avgSpeedKmh:    avgSpeedKmh,
		medianSpeedKmh: medianSpeedKmh,
		p85SpeedKmh:    p85SpeedKmh,
	}
}

func (sp *SpeedProfile) Samples() []KinematicSample {
	return sp.samples
}

func (sp *SpeedProfile) CumulativeMeters() []float64 {
	return sp.cumulative
}

func (sp *SpeedProfile) TotalDistanceMeters() float64 {
	return sp.totalDistance
}

func (sp *SpeedProfile) SmoothedSpeedsKmh() []float64 {
	return sp.smoothedSpeeds
}

func (sp *SpeedProfile) MaxSpeedKmh() float64 {
	return sp.maxSpeedKmh
}

func (sp *SpeedProfile) AvgSpeedKmh() float64 {
	return sp.avgSpeedKmh
}

func (sp *SpeedProfile) MedianSpeedKmh() float64 {
	return sp.medianSpeedKmh
}

func (sp *SpeedProfile) P85SpeedKmh() float64 {
	return sp.p85SpeedKmh
}
