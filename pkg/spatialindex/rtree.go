package spatialindex

import (
	"math"

	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr *rtree.RTreeG[SampleRef]
}

// SampleRef. one indexed trajectory sample: which clip it belongs to, its
// point index there, and its coordinates for distance ranking.
type SampleRef struct {
	clipId     string
	pointIndex int
	lat        float64
	lon        float64
}

func newSampleRef(clipId string, pointIndex int, lat, lon float64) SampleRef {
	return SampleRef{
		clipId:     clipId,
		pointIndex: pointIndex,
		lat:        lat,
		lon:        lon,
	}
}

func (s SampleRef) GetClipId() string {
	return s.clipId
}

func (s SampleRef) GetPointIndex() int {
	return s.pointIndex
}

func (s SampleRef) GetLat() float64 {
	return s.lat
}

func (s SampleRef) GetLon() float64 {
	return s.lon
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[SampleRef]
	return &Rtree{
		tr: &tr,
	}
}

// Build. index every trajectory sample of every clip, each leaf padded to a
// bounding box with radius boundingBoxRadius (in meters).
func (rt *Rtree) Build(clips []*datastructure.Clip, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")

	indexed := 0
	for _, clip := range clips {
		for i, p := range clip.Points() {
			rt.insert(clip.Id(), i, p.Lat(), p.Lon(), boundingBoxRadius)
			indexed++
		}
	}

	log.Info("R-tree spatial index built.", zap.Int("samples", indexed))
}

func (rt *Rtree) insert(clipId string, pointIndex int, lat, lon, boundingBoxRadius float64) {
	lowerLat, lowerLon := geo.GetDestinationPoint(lat, lon, 225, boundingBoxRadius)
	upperLat, upperLon := geo.GetDestinationPoint(lat, lon, 45, boundingBoxRadius)

	minLat := math.Min(lowerLat, upperLat)
	minLon := math.Min(lowerLon, upperLon)
	maxLat := math.Max(lowerLat, upperLat)
	maxLon := math.Max(lowerLon, upperLon)

	rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
		newSampleRef(clipId, pointIndex, lat, lon))
}

// SearchWithinRadius. all indexed samples within radius (in meters) of the
// query point, capped at 20 candidates.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []SampleRef {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]SampleRef, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data SampleRef) bool {
			results = append(results, data)
			if len(results) >= 20 {
				return false
			}
			return true
		})
	return results
}
