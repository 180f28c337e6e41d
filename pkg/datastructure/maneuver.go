package datastructure

import "github.com/ridelens/ridelens/pkg"

// ManeuverSegment. closed run of consecutive samples past a threshold.
// indices refer to the acceleration series the detector ran over.
type ManeuverSegment struct {
	kind  pkg.ManeuverKind
	start int
	end   int
	mean  float64 // mean acceleration over the run, m/s^2 (negative for braking)
}

func NewManeuverSegment(kind pkg.ManeuverKind, start, end int, mean float64) ManeuverSegment {
	return ManeuverSegment{
		kind:  kind,
		start: start,
		end:   end,
		mean:  mean,
	}
}

func (s ManeuverSegment) Kind() pkg.ManeuverKind {
	return s.kind
}

func (s ManeuverSegment) StartIndex() int {
	return s.start
}

func (s ManeuverSegment) EndIndex() int {
	return s.end
}

func (s ManeuverSegment) MeanAcceleration() float64 {
	return s.mean
}

// TurnEvent. single point whose bearing change exceeds the sharp-turn angle.
type TurnEvent struct {
	index int
	angle float64
}

func NewTurnEvent(index int, angle float64) TurnEvent {
	return TurnEvent{
		index: index,
		angle: angle,
	}
}

func (t TurnEvent) Index() int {
	return t.index
}

func (t TurnEvent) AngleDegrees() float64 {
	return t.angle
}

type ManeuverReport struct {
	hardBraking       []ManeuverSegment
	rapidAcceleration []ManeuverSegment
	sharpTurns        []TurnEvent
}

func NewManeuverReport(hardBraking, rapidAcceleration []ManeuverSegment,
	sharpTurns []TurnEvent) *ManeuverReport {
	return &ManeuverReport{
		hardBraking:       hardBraking,
		rapidAcceleration: rapidAcceleration,
		sharpTurns:        sharpTurns,
	}
}

func (r *ManeuverReport) HardBraking() []ManeuverSegment {
	return r.hardBraking
}

func (r *ManeuverReport) RapidAcceleration() []ManeuverSegment {
	return r.rapidAcceleration
}

func (r *ManeuverReport) SharpTurns() []TurnEvent {
	return r.sharpTurns
}
