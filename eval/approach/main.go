package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"net/http"

	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/concurrent"
	da "github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/engine"
	"github.com/ridelens/ridelens/pkg/geo"
	log "github.com/ridelens/ridelens/pkg/logger"
	"golang.org/x/exp/rand"

	_ "net/http/pprof"
)

var (
	numClips  = flag.Int("clips", 200, "number of synthetic clips to analyze")
	numPoints = flag.Int("points", 900, "trajectory points per clip")
	workers   = flag.Int("workers", 8, "worker pool size")
	outFile   = flag.String("out", "approach_eval.csv", "latency csv output")
	seed      = flag.Uint64("seed", 42, "rng seed")
)

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	go func() {
		_ = http.ListenAndServe("localhost:6969", nil)
	}()

	rd := rand.New(rand.NewSource(*seed))

	clips := make([]*da.Clip, 0, *numClips)
	for i := 0; i < *numClips; i++ {
		clips = append(clips, syntheticClip(rd, i, *numPoints))
	}
	logger.Sugar().Infof("generated %d synthetic clips", len(clips))

	analysisEngine := engine.NewEngine(logger)

	type apParam struct {
		clip   *da.Clip
		marker da.ObjectMarker
	}

	jobs := make([]apParam, 0)
	for _, clip := range clips {
		for _, marker := range clip.Markers() {
			jobs = append(jobs, apParam{clip: clip, marker: marker})
		}
	}

	start := time.Now()

	pool := concurrent.NewWorkerPool[apParam, []string](*workers, len(jobs))
	pool.Start(func(job apParam) []string {
		qStart := time.Now()
		approaches, err := analysisEngine.LocateApproachPoints(job.clip.Points(), job.marker,
			nil, job.clip.FrameRate())
		elapsed := time.Since(qStart)
		if err != nil {
			return []string{job.clip.Id(), "err", err.Error()}
		}
		return []string{
			job.clip.Id(),
			strconv.Itoa(job.clip.NumPoints()),
			strconv.FormatInt(elapsed.Microseconds(), 10),
			strconv.Itoa(len(approaches)),
		}
	})

	for _, job := range jobs {
		pool.AddJob(job)
	}
	pool.Close()
	pool.Wait()

	total := time.Since(start)

	fout, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer fout.Close()

	writer := csv.NewWriter(fout)
	defer writer.Flush()

	if err := writer.Write([]string{"clip_id", "points", "latency_us", "found"}); err != nil {
		panic(err)
	}
	for rec := range pool.CollectResults() {
		if err := writer.Write(rec); err != nil {
			panic(err)
		}
	}

	fmt.Printf("ran %d approach queries in %v (%.0f queries/sec, %d workers)\n",
		len(jobs), total, float64(len(jobs))/total.Seconds(), *workers)
}

// syntheticClip. straight run south with speed wobble and two markers dropped
// ahead of the vehicle.
func syntheticClip(rd *rand.Rand, idx, numPoints int) *da.Clip {
	lat := -7.80 + rd.Float64()*0.02
	lon := 110.36 + rd.Float64()*0.02
	bearing := rd.Float64() * 360.0

	epochMs := int64(1737886091000)
	frameMs := int64(1000.0 / pkg.FRAME_RATE_STANDARD)
	dt := 1.0 / pkg.FRAME_RATE_STANDARD

	points := make([]da.TrajectoryPoint, 0, numPoints)
	for f := 0; f < numPoints; f++ {
		speedKmh := 30.0 + 10.0*rd.Float64()
		stepMeters := speedKmh / pkg.MS_TO_KMH * dt
		lat, lon = geo.GetDestinationPoint(lat, lon, bearing, stepMeters)

		timestamp := strconv.FormatInt(epochMs+int64(f)*frameMs, 10)
		points = append(points, da.NewTrajectoryPoint(f, timestamp, lat, lon))
	}

	markers := make([]da.ObjectMarker, 0, 2)
	for m := 0; m < 2; m++ {
		at := numPoints/4 + rd.Intn(numPoints/2)
		seen := points[at]
		markerLat, markerLon := geo.GetDestinationPoint(seen.Lat(), seen.Lon(), bearing,
			100.0+rd.Float64()*150.0)
		markers = append(markers, da.NewObjectMarker(seen.FrameIndex(), seen.Timestamp(),
			markerLat, markerLon, "stop sign"))
	}

	return da.NewClip(fmt.Sprintf("eval-%03d", idx), pkg.FRAME_RATE_STANDARD, points, markers)
}
