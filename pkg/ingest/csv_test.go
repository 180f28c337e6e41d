package ingest

import (
	"strings"
	"testing"

	"github.com/ridelens/ridelens/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrajectory(t *testing.T) {
	in := strings.NewReader(
		"frame_index,timestamp,lat,lon\n" +
			"60,1737886093800,-7.7693,110.3882\n" +
			"0,1737886091800,-7.7691,110.3880\n" +
			"30,,-7.7692,110.3881\n")

	points, skipped, err := ParseTrajectory(in)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, points, 3)

	// rows come back sorted by frame index
	assert.Equal(t, 0, points[0].FrameIndex())
	assert.Equal(t, 30, points[1].FrameIndex())
	assert.Equal(t, 60, points[2].FrameIndex())

	// the timestamp column is carried raw, missing stays missing
	assert.Equal(t, "1737886091800", points[0].Timestamp())
	assert.Equal(t, "", points[1].Timestamp())

	assert.Equal(t, -7.7691, points[0].Lat())
	assert.Equal(t, 110.3880, points[0].Lon())
}

func TestParseTrajectoryDropsBadRows(t *testing.T) {
	in := strings.NewReader(
		"0,1737886091800,-7.7691,110.3880\n" +
			"30,1737886092800,not-a-lat,110.3881\n" +
			"x,1737886093800,-7.7693,110.3882\n" +
			"90,1737886094800,-7.7694\n" +
			"120,1737886095800,-7.7695,110.3884\n")

	points, skipped, err := ParseTrajectory(in)
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, points, 2)
	assert.Equal(t, 0, points[0].FrameIndex())
	assert.Equal(t, 120, points[1].FrameIndex())
}

func TestParseTrajectoryRejectsDuplicateFrames(t *testing.T) {
	in := strings.NewReader(
		"0,1737886091800,-7.7691,110.3880\n" +
			"0,1737886091900,-7.7692,110.3881\n")

	_, _, err := ParseTrajectory(in)
	require.Error(t, err)

	var uerr *util.Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, util.ErrBadParamInput, uerr.Code())
}

func TestParseTrajectoryNoHeader(t *testing.T) {
	in := strings.NewReader("0,1737886091800,-7.7691,110.3880\n")

	points, skipped, err := ParseTrajectory(in)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, points, 1)
}

func TestParseTrajectoryEmpty(t *testing.T) {
	points, skipped, err := ParseTrajectory(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, points)
}

func TestParseMarkers(t *testing.T) {
	in := strings.NewReader(
		"frame_index,timestamp,lat,lon,label\n" +
			"90,1737886094800,-7.7694,110.3883,stop sign\n" +
			"30,1737886092800,-7.7692,110.3881,cyclist\n" +
			"60,bad-time,-7.7693,110.3882\n")

	markers, skipped, err := ParseMarkers(in)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, markers, 3)

	assert.Equal(t, 30, markers[0].FrameIndex())
	assert.Equal(t, "cyclist", markers[0].Label())

	// the label column is optional
	assert.Equal(t, 60, markers[1].FrameIndex())
	assert.Equal(t, "", markers[1].Label())
	assert.Equal(t, "bad-time", markers[1].Timestamp())

	assert.Equal(t, "stop sign", markers[2].Label())
}
