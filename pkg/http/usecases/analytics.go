package usecases

import (
	"errors"

	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/geo"
	"github.com/ridelens/ridelens/pkg/util"
	"go.uber.org/zap"
)

var (
	ERREMPTYTRAJECTORY = errors.New("trajectory has no points")
	ERRUNKNOWNPOLICY   = errors.New("unknown smoothing policy")
)

type AnalyticsService struct {
	log    *zap.Logger
	engine AnalysisEngine
}

func NewAnalyticsService(log *zap.Logger, engine AnalysisEngine) *AnalyticsService {
	return &AnalyticsService{
		log:    log,
		engine: engine,
	}
}

// SpeedProfile. per-frame kinematics plus ride aggregates for one trajectory.
func (as *AnalyticsService) SpeedProfile(points []datastructure.TrajectoryPoint,
	frameRate float64) (*datastructure.SpeedProfile, error) {
	return as.engine.Profile(points, frameRate)
}

// Smooth. run the named smoothing policy and also encode the smoothed track
// as a polyline so map frontends can draw it directly.
func (as *AnalyticsService) Smooth(points []datastructure.TrajectoryPoint, policyName string,
	windowSize int) ([]datastructure.TrajectoryPoint, string, error) {
	policy := pkg.GetSmoothingPolicy(policyName)
	if policy == pkg.UNKNOWN_POLICY {
		return nil, "", util.WrapErrorf(ERRUNKNOWNPOLICY, util.ErrBadParamInput,
			"smoothing policy %q is not supported", policyName)
	}

	smoothed, err := as.engine.Smooth(points, policy, windowSize)
	if err != nil {
		return nil, "", err
	}

	coords := make([]geo.Coordinate, 0, len(smoothed))
	for _, p := range smoothed {
		coords = append(coords, geo.NewCoordinate(p.Lat(), p.Lon()))
	}
	trackPolyline := geo.PolylineFromCoords(coords)

	return smoothed, trackPolyline, nil
}

func (as *AnalyticsService) Maneuvers(points []datastructure.TrajectoryPoint,
	frameRate float64) (*datastructure.ManeuverReport, error) {
	return as.engine.DetectManeuvers(points, frameRate)
}

func (as *AnalyticsService) ApproachPoints(points []datastructure.TrajectoryPoint,
	marker datastructure.ObjectMarker, targets []float64,
	frameRate float64) ([]datastructure.ApproachPoint, error) {
	return as.engine.LocateApproachPoints(points, marker, targets, frameRate)
}

func (as *AnalyticsService) ClosestApproach(points []datastructure.TrajectoryPoint,
	marker datastructure.ObjectMarker) (datastructure.ClosestApproach, bool, error) {
	closest, found := as.engine.ClosestApproach(points, marker)
	if !found {
		return datastructure.ClosestApproach{}, false, util.WrapErrorf(ERREMPTYTRAJECTORY,
			util.ErrBadParamInput, "closest approach needs at least one trajectory point")
	}

	return closest, true, nil
}
