package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/geo"
	log "github.com/ridelens/ridelens/pkg/logger"
	"github.com/ridelens/ridelens/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	outDir     = flag.String("out", "./data/clips", "output directory for clip archives")
	numClips   = flag.Int("clips", 20, "number of clips to generate")
	numPoints  = flag.Int("points", 900, "trajectory points per clip")
	frameRate  = flag.Float64("frame_rate", pkg.FRAME_RATE_STANDARD, "clip frame rate in frames per second")
	outAndBack = flag.Bool("out_and_back", false, "append the reversed leg so every ride returns to its start")
	seed       = flag.Uint64("seed", 0, "rng seed, 0 seeds from the clock")
)

// generated rides stay inside the Yogyakarta capture region.
const (
	minLat = -7.85
	maxLat = -7.74
	minLon = 110.33
	maxLon = 110.44
)

var markerLabels = []string{"stop sign", "traffic light", "pedestrian", "speed bump", "parked car"}

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	rd := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}

	for i := 0; i < *numClips; i++ {
		clip := generateClip(rd, i, *numPoints, *frameRate, *outAndBack)
		path := filepath.Join(*outDir, fmt.Sprintf("%s.clip.bz2", clip.Id()))
		if err := clip.WriteClip(path); err != nil {
			panic(err)
		}

		if (i+1)%10 == 0 {
			fmt.Printf("generated %d clips\n", i+1)
		}
	}

	logger.Info("synthetic corpus generated", zap.Int("clips", *numClips),
		zap.String("dir", *outDir), zap.Uint64("seed", *seed))
}

// generateClip. random walk with cruise/brake/turn phases so the analytics
// stack has real maneuvers to find.
func generateClip(rd *rand.Rand, idx, numPoints int, frameRate float64, outAndBack bool) *datastructure.Clip {
	lat := minLat + rd.Float64()*(maxLat-minLat)
	lon := minLon + rd.Float64()*(maxLon-minLon)
	bearing := rd.Float64() * 360.0

	speedKmh := 20.0 + rd.Float64()*30.0
	targetKmh := speedKmh
	dt := 1.0 / frameRate

	// clips start somewhere in late january 2025
	epochMs := int64(1737849600000) + rd.Int63n(30*24*3600*1000)
	frameMs := int64(1000.0 / frameRate)

	points := make([]datastructure.TrajectoryPoint, 0, numPoints)
	bearingAt := make([]float64, 0, numPoints)
	turnLeft := 0
	turnStep := 0.0

	for f := 0; f < numPoints; f++ {
		switch {
		case turnLeft > 0:
			bearing += turnStep
			turnLeft--
		case rd.Float64() < 0.005:
			// corner over roughly ten frames
			turnLeft = 10
			turnStep = (35.0 + rd.Float64()*55.0) / 10.0
			if rd.Float64() < 0.5 {
				turnStep = -turnStep
			}
		default:
			bearing += (rd.Float64() - 0.5) * 2.0
		}
		if bearing < 0 {
			bearing += 360.0
		} else if bearing >= 360.0 {
			bearing -= 360.0
		}

		if rd.Float64() < 0.01 {
			targetKmh = 10.0 + rd.Float64()*60.0
		}
		if rd.Float64() < 0.003 {
			// hard stop
			targetKmh = 0.0
		}
		speedKmh += (targetKmh - speedKmh) * 0.05
		if speedKmh < 0 {
			speedKmh = 0
		}

		stepMeters := speedKmh / pkg.MS_TO_KMH * dt
		lat, lon = geo.GetDestinationPoint(lat, lon, bearing, stepMeters)

		timestamp := strconv.FormatInt(epochMs+int64(f)*frameMs, 10)
		points = append(points, datastructure.NewTrajectoryPoint(f, timestamp, lat, lon))
		bearingAt = append(bearingAt, bearing)
	}

	if outAndBack {
		points = appendReturnLeg(points, frameMs)
	}

	markers := placeMarkers(rd, points, bearingAt)

	id := fmt.Sprintf("ride-%03d", idx)
	return datastructure.NewClip(id, frameRate, points, markers)
}

// appendReturnLeg. drive the same track backwards, frames and timestamps
// keep counting from where the outbound leg stopped.
func appendReturnLeg(points []datastructure.TrajectoryPoint, frameMs int64) []datastructure.TrajectoryPoint {
	n := len(points)
	if n == 0 {
		return points
	}

	lastTs, err := strconv.ParseInt(points[n-1].Timestamp(), 10, 64)
	if err != nil {
		lastTs = 0
	}

	reversed := util.ReverseG(points)
	out := points
	for i, p := range reversed {
		frame := n + i
		timestamp := strconv.FormatInt(lastTs+int64(i+1)*frameMs, 10)
		out = append(out, datastructure.NewTrajectoryPoint(frame, timestamp, p.Lat(), p.Lon()))
	}
	return out
}

// placeMarkers. drop one to three roadside objects ahead of the vehicle so
// the approach ladder has something to measure against.
func placeMarkers(rd *rand.Rand, points []datastructure.TrajectoryPoint,
	bearingAt []float64) []datastructure.ObjectMarker {
	if len(points) < 50 {
		return nil
	}

	numMarkers := 1 + rd.Intn(3)
	markers := make([]datastructure.ObjectMarker, 0, numMarkers)
	for m := 0; m < numMarkers; m++ {
		at := 10 + rd.Intn(len(bearingAt)-20)
		seen := points[at]

		ahead := 80.0 + rd.Float64()*120.0
		markerLat, markerLon := geo.GetDestinationPoint(seen.Lat(), seen.Lon(), bearingAt[at], ahead)

		label := markerLabels[rd.Intn(len(markerLabels))]
		markers = append(markers, datastructure.NewObjectMarker(seen.FrameIndex(), seen.Timestamp(),
			markerLat, markerLon, label))
	}
	return markers
}
