package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/engine"
	"github.com/ridelens/ridelens/pkg/ingest"
	log "github.com/ridelens/ridelens/pkg/logger"
	"go.uber.org/zap"
)

var (
	pointsFile  = flag.String("points", "./data/points.csv", "trajectory csv exported from the dashcam pipeline")
	markersFile = flag.String("markers", "", "optional object marker csv")
	frameRate   = flag.Float64("frame_rate", pkg.FRAME_RATE_STANDARD, "clip frame rate in frames per second")
	smoothing   = flag.String("smoothing", "rolling_window", "smoothing policy applied before profiling (rolling_window or kalman)")
	windowSize  = flag.Int("window_size", pkg.DEFAULT_ROLLING_WINDOW_SIZE, "rolling window size")
	profileOut  = flag.String("profile_out", "./data/profile.csv", "per-frame kinematics csv output")
	approachOut = flag.String("approach_out", "./data/approach.csv", "approach-point csv output, written when markers are given")
	archiveOut  = flag.String("archive_out", "", "optional clip archive (.clip.bz2) output path")
	clipId      = flag.String("clip_id", "", "clip id stored in the archive")
)

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	points, skipped, err := ingest.ReadTrajectoryFile(*pointsFile)
	if err != nil {
		panic(err)
	}
	if skipped > 0 {
		logger.Warn("skipped malformed trajectory rows", zap.Int("rows", skipped))
	}

	var markers []datastructure.ObjectMarker
	if *markersFile != "" {
		var markerSkipped int
		markers, markerSkipped, err = ingest.ReadMarkersFile(*markersFile)
		if err != nil {
			panic(err)
		}
		if markerSkipped > 0 {
			logger.Warn("skipped malformed marker rows", zap.Int("rows", markerSkipped))
		}
	}

	analysisEngine := engine.NewEngine(logger)

	smoothed, err := analysisEngine.Smooth(points, pkg.GetSmoothingPolicy(*smoothing), *windowSize)
	if err != nil {
		panic(err)
	}

	profile, err := analysisEngine.Profile(smoothed, *frameRate)
	if err != nil {
		panic(err)
	}
	if err := writeProfileCSV(*profileOut, profile); err != nil {
		panic(err)
	}

	fmt.Printf("trajectory: %d points (%d skipped), total distance %.1f m\n",
		len(points), skipped, profile.TotalDistanceMeters())
	fmt.Printf("speed kmh: max %.1f avg %.1f median %.1f p85 %.1f\n",
		profile.MaxSpeedKmh(), profile.AvgSpeedKmh(), profile.MedianSpeedKmh(), profile.P85SpeedKmh())

	// maneuvers run on the raw trajectory so gps glitches still show up
	report, err := analysisEngine.DetectManeuvers(points, *frameRate)
	if err != nil {
		panic(err)
	}
	fmt.Printf("maneuvers: %d hard braking, %d rapid acceleration, %d sharp turns\n",
		len(report.HardBraking()), len(report.RapidAcceleration()), len(report.SharpTurns()))
	for _, seg := range report.HardBraking() {
		fmt.Printf("  hard braking frames [%d..%d] mean %.2f m/s^2\n",
			seg.StartIndex(), seg.EndIndex(), seg.MeanAcceleration())
	}
	for _, seg := range report.RapidAcceleration() {
		fmt.Printf("  rapid acceleration frames [%d..%d] mean %.2f m/s^2\n",
			seg.StartIndex(), seg.EndIndex(), seg.MeanAcceleration())
	}

	if len(markers) > 0 {
		if err := writeApproachCSV(*approachOut, analysisEngine, points, markers, *frameRate); err != nil {
			panic(err)
		}
	}

	if *archiveOut != "" {
		clip := datastructure.NewClip(*clipId, *frameRate, points, markers)
		if err := clip.WriteClip(*archiveOut); err != nil {
			panic(err)
		}
		logger.Info("clip archive written", zap.String("path", *archiveOut))
	}
}

func writeProfileCSV(filename string, profile *datastructure.SpeedProfile) error {
	fout, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fout.Close()

	writer := csv.NewWriter(fout)
	defer writer.Flush()

	header := []string{"distance_m", "duration_s", "speed_ms", "speed_kmh", "bearing_deg",
		"accel_ms2", "reliability", "cumulative_m"}
	if err := writer.Write(header); err != nil {
		return err
	}

	cumulative := profile.CumulativeMeters()
	for i, sample := range profile.Samples() {
		accel := ""
		if a, ok := sample.Acceleration(); ok {
			accel = strconv.FormatFloat(a, 'f', -1, 64)
		}
		rec := []string{
			strconv.FormatFloat(sample.DistanceMeters(), 'f', -1, 64),
			strconv.FormatFloat(sample.DurationSeconds(), 'f', -1, 64),
			strconv.FormatFloat(sample.SpeedMS(), 'f', -1, 64),
			strconv.FormatFloat(sample.SpeedKmh(), 'f', -1, 64),
			strconv.FormatFloat(sample.BearingDegrees(), 'f', -1, 64),
			accel,
			strconv.FormatFloat(sample.Reliability(), 'f', -1, 64),
			strconv.FormatFloat(cumulative[i], 'f', -1, 64),
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}

	return nil
}

func writeApproachCSV(filename string, analysisEngine *engine.Engine,
	points []datastructure.TrajectoryPoint, markers []datastructure.ObjectMarker,
	frameRate float64) error {
	fout, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fout.Close()

	writer := csv.NewWriter(fout)
	defer writer.Flush()

	header := []string{"marker_label", "marker_frame", "target_m", "lat", "lon", "frame",
		"timestamp", "offset_s", "bearing_deg", "speed_kmh", "interpolated"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, marker := range markers {
		approaches, err := analysisEngine.LocateApproachPoints(points, marker, nil, frameRate)
		if err != nil {
			return err
		}

		for _, ap := range approaches {
			speed := ""
			if s, ok := ap.Speed(); ok {
				speed = strconv.FormatFloat(s, 'f', -1, 64)
			}
			rec := []string{
				marker.Label(),
				strconv.Itoa(marker.FrameIndex()),
				strconv.FormatFloat(ap.TargetDistance(), 'f', -1, 64),
				strconv.FormatFloat(ap.Lat(), 'f', -1, 64),
				strconv.FormatFloat(ap.Lon(), 'f', -1, 64),
				strconv.Itoa(ap.FrameIndex()),
				ap.Timestamp(),
				strconv.FormatFloat(ap.TimeOffsetSeconds(), 'f', -1, 64),
				strconv.FormatFloat(ap.BearingToMarker(), 'f', -1, 64),
				speed,
				strconv.FormatBool(ap.Interpolated()),
			}
			if err := writer.Write(rec); err != nil {
				return err
			}
		}

		if closest, ok := analysisEngine.ClosestApproach(points, marker); ok {
			fmt.Printf("marker %q frame %d: closest approach %.1f m at segment %d\n",
				marker.Label(), marker.FrameIndex(), closest.DistanceMeters(), closest.SegmentIndex())
		}
	}

	return nil
}
