package usecases

import (
	"testing"

	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/corpus"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func equatorClip(id string, baseLon float64, n int) *datastructure.Clip {
	points := make([]datastructure.TrajectoryPoint, 0, n)
	for i := 0; i < n; i++ {
		// 0.0005 deg of longitude on the equator is about 55 m
		points = append(points, datastructure.NewTrajectoryPoint(i, "", 0,
			baseLon+float64(i)*0.0005))
	}
	return datastructure.NewClip(id, pkg.FRAME_RATE_STANDARD, points, nil)
}

func TestNearestSamples(t *testing.T) {
	log := zap.NewNop()

	clipCorpus := corpus.NewCorpus(log)
	clipCorpus.Add(equatorClip("near", 0, 3))
	clipCorpus.Add(equatorClip("far", 0.1, 2))

	rtree := spatialindex.NewRtree()
	rtree.Build(clipCorpus.List(), 50.0, log)

	service := NewCorpusService(log, clipCorpus, rtree, 100.0)

	t.Run("default radius only reaches the near clip", func(t *testing.T) {
		samples := service.NearestSamples(0, 0.0005, 0)
		require.NotEmpty(t, samples)

		for _, sample := range samples {
			assert.Equal(t, "near", sample.ClipId())
		}
		// query sits on the middle sample
		assert.Equal(t, 1, samples[0].PointIndex())
		assert.InDelta(t, 0.0, samples[0].DistanceMeters(), 1e-6)
	})

	t.Run("results sorted by distance", func(t *testing.T) {
		samples := service.NearestSamples(0, 0, 200.0)
		require.True(t, len(samples) >= 2)

		for i := 1; i < len(samples); i++ {
			assert.LessOrEqual(t, samples[i-1].DistanceMeters(), samples[i].DistanceMeters())
		}
	})

	t.Run("wide radius spans both clips", func(t *testing.T) {
		samples := service.NearestSamples(0, 0.05, 15000.0)

		clipIds := make(map[string]bool)
		for _, sample := range samples {
			clipIds[sample.ClipId()] = true
		}
		assert.True(t, clipIds["near"])
		assert.True(t, clipIds["far"])
	})
}

func TestNearestSamplesSkipsStaleEntries(t *testing.T) {
	log := zap.NewNop()

	indexed := corpus.NewCorpus(log)
	indexed.Add(equatorClip("near", 0, 3))
	indexed.Add(equatorClip("far", 0.1, 2))

	rtree := spatialindex.NewRtree()
	rtree.Build(indexed.List(), 50.0, log)

	// the serving corpus no longer holds the near clip
	serving := corpus.NewCorpus(log)
	serving.Add(equatorClip("far", 0.1, 2))

	service := NewCorpusService(log, serving, rtree, 100.0)

	samples := service.NearestSamples(0, 0.05, 15000.0)
	require.NotEmpty(t, samples)
	for _, sample := range samples {
		assert.Equal(t, "far", sample.ClipId())
	}
}
