package usecases

import (
	"sort"

	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/geo"
	"go.uber.org/zap"
)

type CorpusService struct {
	log          *zap.Logger
	corpus       ClipCorpus
	spatialIndex SpatialIndex
	searchRadius float64
}

// NewCorpusService. searchRadius (meters) is the default radius for nearest
// queries that do not pass one.
func NewCorpusService(log *zap.Logger, corpus ClipCorpus, spatialIndex SpatialIndex,
	searchRadius float64) *CorpusService {
	return &CorpusService{
		log:          log,
		corpus:       corpus,
		spatialIndex: spatialIndex,
		searchRadius: searchRadius,
	}
}

func (cs *CorpusService) ListClips() []*datastructure.Clip {
	return cs.corpus.List()
}

func (cs *CorpusService) GetClip(id string) (*datastructure.Clip, error) {
	return cs.corpus.Get(id)
}

func (cs *CorpusService) ClipProfile(id string) (*datastructure.SpeedProfile, error) {
	return cs.corpus.Profile(id)
}

// NearbySample. one indexed trajectory sample near the query position.
type NearbySample struct {
	clipId         string
	pointIndex     int
	frameIndex     int
	lat, lon       float64
	distanceMeters float64
}

func (n NearbySample) ClipId() string {
	return n.clipId
}

func (n NearbySample) PointIndex() int {
	return n.pointIndex
}

func (n NearbySample) FrameIndex() int {
	return n.frameIndex
}

func (n NearbySample) Lat() float64 {
	return n.lat
}

func (n NearbySample) Lon() float64 {
	return n.lon
}

func (n NearbySample) DistanceMeters() float64 {
	return n.distanceMeters
}

// NearestSamples. query the spatial index around (lat, lon) and resolve every
// hit back to its clip, nearest first. radius <= 0 falls back to the service
// default.
func (cs *CorpusService) NearestSamples(lat, lon, radius float64) []NearbySample {
	if radius <= 0 {
		radius = cs.searchRadius
	}

	refs := cs.spatialIndex.SearchWithinRadius(lat, lon, radius)

	samples := make([]NearbySample, 0, len(refs))
	for _, ref := range refs {
		clip, err := cs.corpus.Get(ref.GetClipId())
		if err != nil {
			// index can briefly hold samples of a replaced clip
			cs.log.Debug("skipping stale spatial index entry",
				zap.String("clipId", ref.GetClipId()))
			continue
		}

		points := clip.Points()
		if ref.GetPointIndex() >= len(points) {
			continue
		}
		point := points[ref.GetPointIndex()]

		samples = append(samples, NearbySample{
			clipId:         ref.GetClipId(),
			pointIndex:     ref.GetPointIndex(),
			frameIndex:     point.FrameIndex(),
			lat:            ref.GetLat(),
			lon:            ref.GetLon(),
			distanceMeters: geo.CalculateHaversineDistance(lat, lon, ref.GetLat(), ref.GetLon()),
		})
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].distanceMeters < samples[j].distanceMeters
	})

	return samples
}
