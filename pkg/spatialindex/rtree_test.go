package spatialindex

import (
	"testing"

	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func indexedClips() []*datastructure.Clip {
	latStep := util.RadiansToDegree(100.0 / 6371000.0)

	near := make([]datastructure.TrajectoryPoint, 0, 3)
	for i := 0; i < 3; i++ {
		near = append(near, datastructure.NewTrajectoryPoint(i*30, "",
			float64(i)*latStep, 0))
	}

	// a second drive roughly 11 km east
	far := make([]datastructure.TrajectoryPoint, 0, 3)
	for i := 0; i < 3; i++ {
		far = append(far, datastructure.NewTrajectoryPoint(i*30, "",
			float64(i)*latStep, 0.1))
	}

	return []*datastructure.Clip{
		datastructure.NewClip("near", 30, near, nil),
		datastructure.NewClip("far", 30, far, nil),
	}
}

func TestRtreeSearchWithinRadius(t *testing.T) {
	rt := NewRtree()
	rt.Build(indexedClips(), 50, zap.NewNop())

	// querying right at the first drive only hits its samples
	results := rt.SearchWithinRadius(0, 0, 150)
	require.NotEmpty(t, results)
	for _, ref := range results {
		assert.Equal(t, "near", ref.GetClipId())
	}

	// nothing indexed around a point far from both drives
	assert.Empty(t, rt.SearchWithinRadius(1.0, 1.0, 150))
}

func TestRtreeSearchFindsBothDrives(t *testing.T) {
	rt := NewRtree()
	rt.Build(indexedClips(), 50, zap.NewNop())

	// a 15 km radius spans the 11 km gap between the drives
	results := rt.SearchWithinRadius(0, 0.05, 15000)

	clipIds := make(map[string]bool)
	for _, ref := range results {
		clipIds[ref.GetClipId()] = true
	}
	assert.True(t, clipIds["near"])
	assert.True(t, clipIds["far"])
}

func TestRtreeSearchCapped(t *testing.T) {
	latStep := util.RadiansToDegree(1.0 / 6371000.0)
	points := make([]datastructure.TrajectoryPoint, 0, 50)
	for i := 0; i < 50; i++ {
		points = append(points, datastructure.NewTrajectoryPoint(i, "",
			float64(i)*latStep, 0))
	}

	rt := NewRtree()
	rt.Build([]*datastructure.Clip{datastructure.NewClip("dense", 30, points, nil)},
		10, zap.NewNop())

	results := rt.SearchWithinRadius(0, 0, 500)
	assert.Len(t, results, 20)
}
