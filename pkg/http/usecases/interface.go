package usecases

import (
	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/spatialindex"
)

type AnalysisEngine interface {
	Profile(points []datastructure.TrajectoryPoint, frameRate float64) (*datastructure.SpeedProfile, error)
	AnnotateSpeeds(points []datastructure.TrajectoryPoint, frameRate float64) ([]datastructure.TrajectoryPoint, error)
	Smooth(points []datastructure.TrajectoryPoint, policy pkg.SmoothingPolicy,
		windowSize int) ([]datastructure.TrajectoryPoint, error)
	DetectManeuvers(points []datastructure.TrajectoryPoint, frameRate float64) (*datastructure.ManeuverReport, error)
	LocateApproachPoints(points []datastructure.TrajectoryPoint, marker datastructure.ObjectMarker,
		targets []float64, frameRate float64) ([]datastructure.ApproachPoint, error)
	ClosestApproach(points []datastructure.TrajectoryPoint,
		marker datastructure.ObjectMarker) (datastructure.ClosestApproach, bool)
}

type ClipCorpus interface {
	Get(id string) (*datastructure.Clip, error)
	List() []*datastructure.Clip
	Len() int
	Profile(id string) (*datastructure.SpeedProfile, error)
}

type SpatialIndex interface {
	SearchWithinRadius(float64, float64, float64) []spatialindex.SampleRef
}
