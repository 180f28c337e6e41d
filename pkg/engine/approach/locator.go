package approach

import (
	"math"
	"sort"
	"strconv"

	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/geo"
	"github.com/ridelens/ridelens/pkg/timeparse"
	"github.com/ridelens/ridelens/pkg/util"
)

type Locator struct {
	exactToleranceMeters float64
	normalizer           *timeparse.Normalizer
}

func NewLocator() *Locator {
	return NewLocatorWithNormalizer(timeparse.NewNormalizer())
}

// NewLocatorWithNormalizer. lets callers plug an observing normalizer so
// timestamp-fallback decisions are traceable.
func NewLocatorWithNormalizer(normalizer *timeparse.Normalizer) *Locator {
	return &Locator{
		exactToleranceMeters: pkg.APPROACH_EXACT_TOLERANCE_METERS,
		normalizer:           normalizer,
	}
}

// Locate. find, per target distance, the causally-earliest trajectory
// position at that distance from the marker, exact or interpolated.
//
// the ordering key is the normalized timestamp only when the marker's and
// every trajectory timestamp parse; otherwise frame-index order applies, to
// marker and trajectory alike, never mixed mid-sequence. the pass only visits
// points at or before the marker (approach points are history up to the
// marker). targets that never match or cross are simply absent. the result is
// sorted ascending by target distance.
func (loc *Locator) Locate(points []datastructure.TrajectoryPoint, marker datastructure.ObjectMarker,
	targets []float64, frameRate float64) []datastructure.ApproachPoint {

	result := make([]datastructure.ApproachPoint, 0, len(targets))
	if len(points) == 0 || len(targets) == 0 {
		return result
	}

	pointTimes, allPointTimesValid := loc.parseAll(points)
	markerTime, markerErr := loc.normalizer.Parse(marker.Timestamp())
	markerTimeValid := markerErr == nil
	useTimestampOrder := markerTimeValid && allPointTimesValid

	restricted := make([]int, 0, len(points))
	for i := range points {
		if useTimestampOrder {
			if pointTimes[i] <= markerTime {
				restricted = append(restricted, i)
			}
		} else if points[i].FrameIndex() <= marker.FrameIndex() {
			restricted = append(restricted, i)
		}
	}
	if len(restricted) == 0 {
		return result
	}

	distances := make([]float64, len(restricted))
	for k, i := range restricted {
		distances[k] = geo.CalculateHaversineDistance(points[i].Lat(), points[i].Lon(),
			marker.Lat(), marker.Lon())
	}

	found := make(map[float64]bool, len(targets))
	for k, i := range restricted {
		dHere := distances[k]
		for _, target := range targets {
			if found[target] {
				continue
			}
			if math.Abs(dHere-target) < loc.exactToleranceMeters {
				result = append(result, loc.exactPoint(points[i], marker, target,
					markerTime, markerTimeValid, frameRate))
				found[target] = true
				continue
			}
			if k+1 < len(restricted) && dHere > target && distances[k+1] < target {
				ratio := (dHere - target) / (dHere - distances[k+1])
				result = append(result, loc.interpolatedPoint(points[i], points[restricted[k+1]],
					marker, target, ratio, markerTime, markerTimeValid, frameRate))
				found[target] = true
			}
		}
	}

	sort.Slice(result, func(a, b int) bool {
		return result[a].TargetDistance() < result[b].TargetDistance()
	})
	return result
}

func (loc *Locator) exactPoint(p datastructure.TrajectoryPoint, marker datastructure.ObjectMarker,
	target float64, markerTime int64, markerTimeValid bool, frameRate float64) datastructure.ApproachPoint {

	offset := loc.timeOffsetSeconds(p.Timestamp(), float64(p.FrameIndex()),
		marker, markerTime, markerTimeValid, frameRate)
	bearing := geo.BearingTo(p.Lat(), p.Lon(), marker.Lat(), marker.Lon())

	approachPoint := datastructure.NewApproachPoint(target, p.Lat(), p.Lon(),
		p.FrameIndex(), p.Timestamp(), offset, bearing, false)
	if speed, ok := p.Speed(); ok {
		approachPoint = approachPoint.WithSpeed(speed)
	}
	return approachPoint
}

func (loc *Locator) interpolatedPoint(here, next datastructure.TrajectoryPoint,
	marker datastructure.ObjectMarker, target, ratio float64,
	markerTime int64, markerTimeValid bool, frameRate float64) datastructure.ApproachPoint {

	lat := util.LerpG(here.Lat(), next.Lat(), ratio)
	lon := util.LerpG(here.Lon(), next.Lon(), ratio)
	fractionalFrame := util.LerpG(float64(here.FrameIndex()), float64(next.FrameIndex()), ratio)

	timestamp := loc.interpolateTimestamp(here.Timestamp(), next.Timestamp(), ratio)

	offset := loc.timeOffsetSeconds(timestamp, fractionalFrame,
		marker, markerTime, markerTimeValid, frameRate)
	bearing := geo.BearingTo(lat, lon, marker.Lat(), marker.Lon())

	approachPoint := datastructure.NewApproachPoint(target, lat, lon,
		int(math.Round(fractionalFrame)), timestamp, offset, bearing, true)

	hereSpeed, hereOk := here.Speed()
	nextSpeed, nextOk := next.Speed()
	if hereOk && nextOk {
		approachPoint = approachPoint.WithSpeed(util.LerpG(hereSpeed, nextSpeed, ratio))
	}
	return approachPoint
}

// interpolateTimestamp. lerp of the normalized times, re-encoded as an
// epoch-millisecond literal. when either side fails to parse the interpolated
// timestamp is the missing sentinel, never a guess.
func (loc *Locator) interpolateTimestamp(hereRaw, nextRaw string, ratio float64) string {
	hereTime, hereErr := loc.normalizer.Parse(hereRaw)
	nextTime, nextErr := loc.normalizer.Parse(nextRaw)
	if hereErr != nil || nextErr != nil {
		return ""
	}
	interpolated := util.LerpG(float64(hereTime), float64(nextTime), ratio)
	return strconv.FormatInt(int64(math.Round(interpolated)), 10)
}

// timeOffsetSeconds. marker time minus point time when both timestamps are
// valid, otherwise the frame-index delta over the frame rate. the fractional
// frame is used for interpolated points so the offset stays sub-frame exact.
func (loc *Locator) timeOffsetSeconds(pointRaw string, pointFrame float64,
	marker datastructure.ObjectMarker, markerTime int64, markerTimeValid bool,
	frameRate float64) float64 {

	if markerTimeValid {
		if pointTime, err := loc.normalizer.Parse(pointRaw); err == nil {
			return timeparse.Difference(pointTime, markerTime)
		}
	}
	return (float64(marker.FrameIndex()) - pointFrame) / frameRate
}

func (loc *Locator) parseAll(points []datastructure.TrajectoryPoint) ([]int64, bool) {
	times := make([]int64, len(points))
	valid := true
	for i, p := range points {
		t, err := loc.normalizer.Parse(p.Timestamp())
		if err != nil {
			valid = false
			break
		}
		times[i] = t
	}
	return times, valid
}
