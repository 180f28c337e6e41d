package controllers

import (
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/http/usecases"
)

type AnalyticsService interface {
	SpeedProfile(points []datastructure.TrajectoryPoint, frameRate float64) (*datastructure.SpeedProfile, error)
	Smooth(points []datastructure.TrajectoryPoint, policyName string,
		windowSize int) ([]datastructure.TrajectoryPoint, string, error)
	Maneuvers(points []datastructure.TrajectoryPoint, frameRate float64) (*datastructure.ManeuverReport, error)
	ApproachPoints(points []datastructure.TrajectoryPoint, marker datastructure.ObjectMarker,
		targets []float64, frameRate float64) ([]datastructure.ApproachPoint, error)
	ClosestApproach(points []datastructure.TrajectoryPoint,
		marker datastructure.ObjectMarker) (datastructure.ClosestApproach, bool, error)
	BatchAnalyze(clips []*datastructure.Clip) []usecases.ClipSummary
}

type CorpusService interface {
	ListClips() []*datastructure.Clip
	GetClip(id string) (*datastructure.Clip, error)
	ClipProfile(id string) (*datastructure.SpeedProfile, error)
	NearestSamples(lat, lon, radius float64) []usecases.NearbySample
}
