package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// clip archive: bzip2-compressed, line oriented. one header line with the
// counts, frame rate and id, then one line per trajectory point and one per
// marker. timestamps and labels are quoted because they may contain spaces.

// WriteClip. persist the clip to a bzip2 clip archive.
func (c *Clip) WriteClip(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	frameRateF := strconv.FormatFloat(c.frameRate, 'f', -1, 64)
	fmt.Fprintf(w, "%d %d %s %s\n",
		len(c.points), len(c.markers), frameRateF, strconv.Quote(c.id))

	for _, p := range c.points {
		latF := strconv.FormatFloat(p.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(p.lon, 'f', -1, 64)
		speedF := strconv.FormatFloat(p.speedKmh, 'f', -1, 64)

		fmt.Fprintf(w, "%d %t %s %s %s %s\n",
			p.frameIndex, p.hasSpeed, speedF, latF, lonF, strconv.Quote(p.timestamp))
	}

	for _, m := range c.markers {
		latF := strconv.FormatFloat(m.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(m.lon, 'f', -1, 64)

		fmt.Fprintf(w, "%d %s %s %s %s\n",
			m.frameIndex, latF, lonF, strconv.Quote(m.timestamp), strconv.Quote(m.label))
	}

	return w.Flush()
}

// ReadClip. load a clip from a bzip2 clip archive written by WriteClip.
func ReadClip(filename string) (*Clip, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(bz)

	line, err := readLine(br)
	if err != nil {
		return nil, err
	}
	tokens := fields(line)
	if len(tokens) < 4 {
		return nil, fmt.Errorf("invalid clip header %q", line)
	}

	numPoints, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, err
	}
	numMarkers, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, err
	}
	frameRate, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return nil, err
	}
	id, err := strconv.Unquote(strings.Join(tokens[3:], " "))
	if err != nil {
		return nil, err
	}

	points := make([]TrajectoryPoint, numPoints)
	for i := 0; i < numPoints; i++ {
		pointLine, err := readLine(br)
		if err != nil {
			return nil, err
		}
		points[i], err = parsePointLine(pointLine)
		if err != nil {
			return nil, err
		}
	}

	markers := make([]ObjectMarker, numMarkers)
	for i := 0; i < numMarkers; i++ {
		markerLine, err := readLine(br)
		if err != nil {
			return nil, err
		}
		markers[i], err = parseMarkerLine(markerLine)
		if err != nil {
			return nil, err
		}
	}

	return NewClip(id, frameRate, points, markers), nil
}

func parsePointLine(line string) (TrajectoryPoint, error) {
	tokens := fields(line)
	if len(tokens) < 6 {
		return TrajectoryPoint{}, fmt.Errorf("invalid point line %q", line)
	}

	frameIndex, err := strconv.Atoi(tokens[0])
	if err != nil {
		return TrajectoryPoint{}, err
	}
	hasSpeed, err := strconv.ParseBool(tokens[1])
	if err != nil {
		return TrajectoryPoint{}, err
	}
	speedKmh, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return TrajectoryPoint{}, err
	}
	lat, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return TrajectoryPoint{}, err
	}
	lon, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return TrajectoryPoint{}, err
	}
	timestamp, err := strconv.Unquote(strings.Join(tokens[5:], " "))
	if err != nil {
		return TrajectoryPoint{}, err
	}

	point := NewTrajectoryPoint(frameIndex, timestamp, lat, lon)
	if hasSpeed {
		point = point.WithSpeed(speedKmh)
	}
	return point, nil
}

func parseMarkerLine(line string) (ObjectMarker, error) {
	tokens := fields(line)
	if len(tokens) < 5 {
		return ObjectMarker{}, fmt.Errorf("invalid marker line %q", line)
	}

	frameIndex, err := strconv.Atoi(tokens[0])
	if err != nil {
		return ObjectMarker{}, err
	}
	lat, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return ObjectMarker{}, err
	}
	lon, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return ObjectMarker{}, err
	}

	// two quoted fields close the line: timestamp then label
	rest := strings.Join(tokens[3:], " ")
	quotedTimestamp, err := strconv.QuotedPrefix(rest)
	if err != nil {
		return ObjectMarker{}, fmt.Errorf("invalid marker line %q", line)
	}
	timestamp, err := strconv.Unquote(quotedTimestamp)
	if err != nil {
		return ObjectMarker{}, err
	}
	label, err := strconv.Unquote(strings.TrimSpace(rest[len(quotedTimestamp):]))
	if err != nil {
		return ObjectMarker{}, err
	}

	return NewObjectMarker(frameIndex, timestamp, lat, lon, label), nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
		} else {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func fields(s string) []string {
	return strings.Fields(s)
}
