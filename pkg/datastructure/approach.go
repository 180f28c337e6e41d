package datastructure

// ApproachPoint. trajectory position at one target distance from a marker,
// causally at or before the marker. either an exact sample hit or a linear
// interpolation between the two samples whose distances bracket the target.
type ApproachPoint struct {
	targetDistance    float64
	lat               float64
	lon               float64
	frameIndex        int // rounded when interpolated
	timestamp         string
	timeOffsetSeconds float64 // marker time - point time, signed
	bearingToMarker   float64
	speedKmh          float64
	hasSpeed          bool
	interpolated      bool
}

func NewApproachPoint(targetDistance, lat, lon float64, frameIndex int, timestamp string,
	timeOffsetSeconds, bearingToMarker float64, interpolated bool) ApproachPoint {
	return ApproachPoint{
		targetDistance:    targetDistance,
		lat:               lat,
		lon:               lon,
		frameIndex:        frameIndex,
		timestamp:         timestamp,
		timeOffsetSeconds: timeOffsetSeconds,
		bearingToMarker:   bearingToMarker,
		interpolated:      interpolated,
	}
}

func (a ApproachPoint) TargetDistance() float64 {
	return a.targetDistance
}

func (a ApproachPoint) Lat() float64 {
	return a.lat
}

func (a ApproachPoint) Lon() float64 {
	return a.lon
}

func (a ApproachPoint) FrameIndex() int {
	return a.frameIndex
}

func (a ApproachPoint) Timestamp() string {
	return a.timestamp
}

func (a ApproachPoint) TimeOffsetSeconds() float64 {
	return a.timeOffsetSeconds
}

func (a ApproachPoint) BearingToMarker() float64 {
	return a.bearingToMarker
}

func (a ApproachPoint) Speed() (float64, bool) {
	return a.speedKmh, a.hasSpeed
}

func (a ApproachPoint) Interpolated() bool {
	return a.interpolated
}

func (a ApproachPoint) WithSpeed(speedKmh float64) ApproachPoint {
	a.speedKmh = speedKmh
	a.hasSpeed = true
	return a
}

// ClosestApproach. nearest on-track position to a marker, found by projecting
// the marker onto every trajectory segment.
type ClosestApproach struct {
	lat            float64
	lon            float64
	segmentIndex   int // index of the segment start point
	distanceMeters float64
}

func NewClosestApproach(lat, lon float64, segmentIndex int, distanceMeters float64) ClosestApproach {
	return ClosestApproach{
		lat:            lat,
		lon:            lon,
		segmentIndex:   segmentIndex,
		distanceMeters: distanceMeters,
	}
}

func (c ClosestApproach) Lat() float64 {
	return c.lat
}

func (c ClosestApproach) Lon() float64 {
	return c.lon
}

func (c ClosestApproach) SegmentIndex() int {
	return c.segmentIndex
}

func (c ClosestApproach) DistanceMeters() float64 {
	return c.distanceMeters
}
