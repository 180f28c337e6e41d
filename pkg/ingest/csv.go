package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/util"
)

// trajectory csv columns: frame_index, timestamp, lat, lon. marker csv adds a
// trailing label column. a header row is recognized and skipped. rows whose
// frame index or coordinates fail to parse are dropped and counted, the
// timestamp column is carried verbatim, valid or not.

const (
	colFrameIndex = 0
	colTimestamp  = 1
	colLat        = 2
	colLon        = 3
	colLabel      = 4
)

// ParseTrajectory. read trajectory points from csv, sorted ascending by frame
// index. returns the points and the number of dropped rows. duplicate frame
// indices are a hard error, the frame index is the authoritative ordering key.
func ParseTrajectory(r io.Reader) ([]datastructure.TrajectoryPoint, int, error) {
	reader := newReader(r)

	points := make([]datastructure.TrajectoryPoint, 0)
	skipped := 0
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}

		point, ok := parsePointRecord(record)
		if !ok {
			skipped++
			continue
		}
		points = append(points, point)
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].FrameIndex() < points[j].FrameIndex()
	})
	for i := 1; i < len(points); i++ {
		if points[i].FrameIndex() == points[i-1].FrameIndex() {
			return nil, 0, util.WrapErrorf(nil, util.ErrBadParamInput,
				"duplicate frame index %d", points[i].FrameIndex())
		}
	}

	return points, skipped, nil
}

// ParseMarkers. read object markers from csv. same column layout as the
// trajectory plus a label column, same drop-and-count policy.
func ParseMarkers(r io.Reader) ([]datastructure.ObjectMarker, int, error) {
	reader := newReader(r)

	markers := make([]datastructure.ObjectMarker, 0)
	skipped := 0
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}

		marker, ok := parseMarkerRecord(record)
		if !ok {
			skipped++
			continue
		}
		markers = append(markers, marker)
	}

	sort.Slice(markers, func(i, j int) bool {
		return markers[i].FrameIndex() < markers[j].FrameIndex()
	})

	return markers, skipped, nil
}

func ReadTrajectoryFile(filename string) ([]datastructure.TrajectoryPoint, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	return ParseTrajectory(f)
}

func ReadMarkersFile(filename string) ([]datastructure.ObjectMarker, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	return ParseMarkers(f)
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

func isHeader(record []string) bool {
	if len(record) <= colLat {
		return false
	}
	_, frameErr := strconv.Atoi(record[colFrameIndex])
	_, latErr := strconv.ParseFloat(record[colLat], 64)
	return frameErr != nil && latErr != nil
}

func parsePointRecord(record []string) (datastructure.TrajectoryPoint, bool) {
	if len(record) <= colLon {
		return datastructure.TrajectoryPoint{}, false
	}

	frameIndex, err := strconv.Atoi(record[colFrameIndex])
	if err != nil {
		return datastructure.TrajectoryPoint{}, false
	}
	lat, err := strconv.ParseFloat(record[colLat], 64)
	if err != nil {
		return datastructure.TrajectoryPoint{}, false
	}
	lon, err := strconv.ParseFloat(record[colLon], 64)
	if err != nil {
		return datastructure.TrajectoryPoint{}, false
	}

	return datastructure.NewTrajectoryPoint(frameIndex, record[colTimestamp], lat, lon), true
}

func parseMarkerRecord(record []string) (datastructure.ObjectMarker, bool) {
	if len(record) <= colLon {
		return datastructure.ObjectMarker{}, false
	}

	frameIndex, err := strconv.Atoi(record[colFrameIndex])
	if err != nil {
		return datastructure.ObjectMarker{}, false
	}
	lat, err := strconv.ParseFloat(record[colLat], 64)
	if err != nil {
		return datastructure.ObjectMarker{}, false
	}
	lon, err := strconv.ParseFloat(record[colLon], 64)
	if err != nil {
		return datastructure.ObjectMarker{}, false
	}

	label := ""
	if len(record) > colLabel {
		label = record[colLabel]
	}

	return datastructure.NewObjectMarker(frameIndex, record[colTimestamp], lat, lon, label), true
}
