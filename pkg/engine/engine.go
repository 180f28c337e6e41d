package engine

import (
	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/engine/approach"
	"github.com/ridelens/ridelens/pkg/engine/kinematics"
	"github.com/ridelens/ridelens/pkg/engine/maneuver"
	"github.com/ridelens/ridelens/pkg/engine/smoothing"
	"github.com/ridelens/ridelens/pkg/geo"
	"github.com/ridelens/ridelens/pkg/timeparse"
	"github.com/ridelens/ridelens/pkg/util"
	"go.uber.org/zap"
)

// Engine. facade over the analysis components. every method is pure: inputs
// are never mutated, outputs are freshly allocated.
type Engine struct {
	log        *zap.Logger
	normalizer *timeparse.Normalizer
	detector   *maneuver.Detector
	locator    *approach.Locator
}

func NewEngine(logger *zap.Logger) *Engine {
	normalizer := timeparse.NewNormalizerWithObserver(parseObserver(logger))
	return &Engine{
		log:        logger,
		normalizer: normalizer,
		detector:   maneuver.NewDetector(),
		locator:    approach.NewLocatorWithNormalizer(normalizer),
	}
}

// parseObserver. timestamp parse tracing hook. failures surface here once per
// raw value instead of ad hoc prints inside the parser.
func parseObserver(logger *zap.Logger) timeparse.Observer {
	return func(raw string, kind timeparse.Kind, epochMs int64, err error) {
		if err != nil {
			logger.Debug("timestamp did not normalize",
				zap.String("raw", raw), zap.String("kind", kind.String()))
		}
	}
}

func (e *Engine) Normalizer() *timeparse.Normalizer {
	return e.normalizer
}

func (e *Engine) Profile(points []datastructure.TrajectoryPoint, frameRate float64) (*datastructure.SpeedProfile, error) {
	if err := validFrameRate(frameRate); err != nil {
		return nil, err
	}
	return kinematics.Profile(points, frameRate), nil
}

func (e *Engine) AnnotateSpeeds(points []datastructure.TrajectoryPoint, frameRate float64) ([]datastructure.TrajectoryPoint, error) {
	if err := validFrameRate(frameRate); err != nil {
		return nil, err
	}
	return kinematics.AnnotateSpeeds(points, frameRate), nil
}

func (e *Engine) Smooth(points []datastructure.TrajectoryPoint, policy pkg.SmoothingPolicy,
	windowSize int) ([]datastructure.TrajectoryPoint, error) {
	switch policy {
	case pkg.ROLLING_WINDOW:
		if windowSize <= 0 {
			windowSize = pkg.DEFAULT_ROLLING_WINDOW_SIZE
		}
		return smoothing.RollingWindow(points, windowSize), nil
	case pkg.KALMAN:
		return smoothing.KalmanSmooth(points), nil
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown smoothing policy %d", policy)
	}
}

func (e *Engine) DetectManeuvers(points []datastructure.TrajectoryPoint, frameRate float64) (*datastructure.ManeuverReport, error) {
	if err := validFrameRate(frameRate); err != nil {
		return nil, err
	}
	return e.detector.Detect(points, frameRate), nil
}

func (e *Engine) LocateApproachPoints(points []datastructure.TrajectoryPoint, marker datastructure.ObjectMarker,
	targets []float64, frameRate float64) ([]datastructure.ApproachPoint, error) {
	if err := validFrameRate(frameRate); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		targets = pkg.DefaultApproachTargets()
	}
	return e.locator.Locate(points, marker, targets, frameRate), nil
}

// ClosestApproach. nearest on-track position to the marker, projecting the
// marker onto every trajectory segment. false when the trajectory is empty.
func (e *Engine) ClosestApproach(points []datastructure.TrajectoryPoint,
	marker datastructure.ObjectMarker) (datastructure.ClosestApproach, bool) {
	if len(points) == 0 {
		return datastructure.ClosestApproach{}, false
	}

	markerCoord := geo.NewCoordinate(marker.Lat(), marker.Lon())
	if len(points) == 1 {
		dist := geo.CalculateHaversineDistance(points[0].Lat(), points[0].Lon(),
			marker.Lat(), marker.Lon())
		return datastructure.NewClosestApproach(points[0].Lat(), points[0].Lon(), 0, dist), true
	}

	best := datastructure.ClosestApproach{}
	bestDist := -1.0
	for i := 0; i < len(points)-1; i++ {
		a := geo.NewCoordinate(points[i].Lat(), points[i].Lon())
		b := geo.NewCoordinate(points[i+1].Lat(), points[i+1].Lon())
		projected := geo.ProjectPointToSegment(a, b, markerCoord)
		dist := geo.CalculateHaversineDistance(projected.GetLat(), projected.GetLon(),
			marker.Lat(), marker.Lon())
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = datastructure.NewClosestApproach(projected.GetLat(), projected.GetLon(), i, dist)
		}
	}
	return best, true
}

func validFrameRate(frameRate float64) error {
	if frameRate <= 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"frame rate must be positive, got %f", frameRate)
	}
	return nil
}
