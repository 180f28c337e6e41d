package maneuver

import (
	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/engine/kinematics"
	"github.com/ridelens/ridelens/pkg/geo"
	"github.com/ridelens/ridelens/pkg/util"
)

type runState uint8

const (
	stateIdle runState = iota
	stateActive
)

// runDetector. two-state machine over a value series: Idle → Active on
// threshold crossing (recording the start index), Active → Idle on release or
// end of sequence, emitting the closed run with its mean value.
type runDetector struct {
	kind    pkg.ManeuverKind
	crossed func(value float64) bool

	state    runState
	start    int
	sum      float64
	count    int
	segments []datastructure.ManeuverSegment
}

func newRunDetector(kind pkg.ManeuverKind, crossed func(value float64) bool) *runDetector {
	return &runDetector{
		kind:     kind,
		crossed:  crossed,
		state:    stateIdle,
		segments: make([]datastructure.ManeuverSegment, 0),
	}
}

func (d *runDetector) feed(index int, value float64) {
	if d.crossed(value) {
		if d.state == stateIdle {
			d.state = stateActive
			d.start = index
			d.sum = 0
			d.count = 0
		}
		d.sum += value
		d.count++
		return
	}

	if d.state == stateActive {
		d.close(index - 1)
	}
}

func (d *runDetector) close(end int) {
	d.segments = append(d.segments,
		datastructure.NewManeuverSegment(d.kind, d.start, end, d.sum/float64(d.count)))
	d.state = stateIdle
}

func (d *runDetector) finish(lastIndex int) {
	if d.state == stateActive {
		d.close(lastIndex)
	}
}

type Detector struct {
	brakingThresholdMS2    float64
	rapidAccelThresholdMS2 float64
	sharpTurnAngleDegrees  float64
}

func NewDetector() *Detector {
	return NewDetectorWithThresholds(pkg.HARD_BRAKING_THRESHOLD_MS2,
		pkg.RAPID_ACCEL_THRESHOLD_MS2, pkg.SHARP_TURN_ANGLE_DEGREES)
}

func NewDetectorWithThresholds(brakingThresholdMS2, rapidAccelThresholdMS2,
	sharpTurnAngleDegrees float64) *Detector {
	return &Detector{
		brakingThresholdMS2:    brakingThresholdMS2,
		rapidAccelThresholdMS2: rapidAccelThresholdMS2,
		sharpTurnAngleDegrees:  sharpTurnAngleDegrees,
	}
}

// DetectFromAccelerationSeries. run both run detectors over an acceleration
// series (m/s^2). returns hard-braking runs and rapid-acceleration runs with
// series indices.
func (det *Detector) DetectFromAccelerationSeries(accelerations []float64) (
	[]datastructure.ManeuverSegment, []datastructure.ManeuverSegment) {

	braking := newRunDetector(pkg.HARD_BRAKING, func(value float64) bool {
		return value < det.brakingThresholdMS2
	})
	rapid := newRunDetector(pkg.RAPID_ACCELERATION, func(value float64) bool {
		return value > det.rapidAccelThresholdMS2
	})

	for i, accel := range accelerations {
		braking.feed(i, accel)
		rapid.feed(i, accel)
	}
	braking.finish(len(accelerations) - 1)
	rapid.finish(len(accelerations) - 1)

	return braking.segments, rapid.segments
}

// Detect. segment a trajectory into braking/acceleration runs and sharp-turn
// events. per-point speeds are derived via the kinematics engine when absent.
// run indices address transitions (transition i covers points i and i+1),
// turn indices address the middle point of the bearing pair.
func (det *Detector) Detect(points []datastructure.TrajectoryPoint, frameRate float64) *datastructure.ManeuverReport {
	if len(points) < 2 {
		return datastructure.NewManeuverReport([]datastructure.ManeuverSegment{},
			[]datastructure.ManeuverSegment{}, []datastructure.TurnEvent{})
	}

	if !everyPointHasSpeed(points) {
		points = kinematics.AnnotateSpeeds(points, frameRate)
	}

	accelerations := accelerationSeries(points, frameRate)
	braking, rapid := det.DetectFromAccelerationSeries(accelerations)

	turns := det.sharpTurns(points)

	return datastructure.NewManeuverReport(braking, rapid, turns)
}

func (det *Detector) sharpTurns(points []datastructure.TrajectoryPoint) []datastructure.TurnEvent {
	turns := make([]datastructure.TurnEvent, 0)
	if len(points) < 3 {
		return turns
	}

	prevBearing := geo.BearingTo(points[0].Lat(), points[0].Lon(), points[1].Lat(), points[1].Lon())
	for i := 1; i < len(points)-1; i++ {
		bearing := geo.BearingTo(points[i].Lat(), points[i].Lon(), points[i+1].Lat(), points[i+1].Lon())
		change := geo.BearingChange(prevBearing, bearing)
		if change > det.sharpTurnAngleDegrees {
			turns = append(turns, datastructure.NewTurnEvent(i, change))
		}
		prevBearing = bearing
	}
	return turns
}

// accelerationSeries. per-transition acceleration from consecutive per-point
// speeds over the frame-based duration. degenerate durations contribute 0.
func accelerationSeries(points []datastructure.TrajectoryPoint, frameRate float64) []float64 {
	accelerations := make([]float64, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		duration := float64(util.Abs(points[i+1].FrameIndex()-points[i].FrameIndex())) / frameRate
		if duration < pkg.MIN_DURATION_SECONDS {
			accelerations = append(accelerations, 0)
			continue
		}
		prevSpeed, _ := points[i].Speed()
		nextSpeed, _ := points[i+1].Speed()
		accelerations = append(accelerations,
			(nextSpeed-prevSpeed)/pkg.MS_TO_KMH/duration)
	}
	return accelerations
}

func everyPointHasSpeed(points []datastructure.TrajectoryPoint) bool {
	for _, p := range points {
		if _, ok := p.Speed(); !ok {
			return false
		}
	}
	return true
}
