package datastructure

type TrajectoryPoint struct {
	frameIndex int
	timestamp  string // raw representation, parsed lazily by timeparse
	lat        float64
	lon        float64
	speedKmh   float64 // derived, only valid when hasSpeed
	hasSpeed   bool
}

func NewTrajectoryPoint(frameIndex int, timestamp string, lat, lon float64) TrajectoryPoint {
	return TrajectoryPoint{
		frameIndex: frameIndex,
		timestamp:  timestamp,
		lat:        lat,
		lon:        lon,
	}
}

func (p TrajectoryPoint) FrameIndex() int {
	return p.frameIndex
}

func (p TrajectoryPoint) Timestamp() string {
	return p.timestamp
}

func (p TrajectoryPoint) Lat() float64 {
	return p.lat
}

func (p TrajectoryPoint) Lon() float64 {
	return p.lon
}

func (p TrajectoryPoint) Speed() (float64, bool) {
	return p.speedKmh, p.hasSpeed
}

// WithSpeed. copy of p carrying a derived speed in km/h. p itself is never mutated.
func (p TrajectoryPoint) WithSpeed(speedKmh float64) TrajectoryPoint {
	p.speedKmh = speedKmh
	p.hasSpeed = true
	return p
}

// WithPosition. copy of p moved to (lat, lon). used by the smoothers.
func (p TrajectoryPoint) WithPosition(lat, lon float64) TrajectoryPoint {
	p.lat = lat
	p.lon = lon
	return p
}

type ObjectMarker struct {
	frameIndex int
	timestamp  string
	lat        float64
	lon        float64
	label      string
}

func NewObjectMarker(frameIndex int, timestamp string, lat, lon float64, label string) ObjectMarker {
	return ObjectMarker{
		frameIndex: frameIndex,
		timestamp:  timestamp,
		lat:        lat,
		lon:        lon,
		label:      label,
	}
}

func (m ObjectMarker) FrameIndex() int {
	return m.frameIndex
}

func (m ObjectMarker) Timestamp() string {
	return m.timestamp
}

func (m ObjectMarker) Lat() float64 {
	return m.lat
}

func (m ObjectMarker) Lon() float64 {
	return m.lon
}

func (m ObjectMarker) Label() string {
	return m.label
}

// Clip. one recorded drive: an ordered trajectory (ascending frame index),
// the markers placed on it and the capture frame rate.
type Clip struct {
	id        string
	frameRate float64
	points    []TrajectoryPoint
	markers   []ObjectMarker
}

func NewClip(id string, frameRate float64, points []TrajectoryPoint, markers []ObjectMarker) *Clip {
	return &Clip{
		id:        id,
		frameRate: frameRate,
		points:    points,
		markers:   markers,
	}
}

func (c *Clip) Id() string {
	return c.id
}

func (c *Clip) FrameRate() float64 {
	return c.frameRate
}

func (c *Clip) Points() []TrajectoryPoint {
	return c.points
}

func (c *Clip) Markers() []ObjectMarker {
	return c.markers
}

func (c *Clip) NumPoints() int {
	return len(c.points)
}
