package usecases

import (
	"runtime"

	"github.com/google/uuid"
	"github.com/ridelens/ridelens/pkg/concurrent"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"go.uber.org/zap"
)

// MarkerApproaches. approach-point ladder of a single annotated marker.
type MarkerApproaches struct {
	marker datastructure.ObjectMarker
	points []datastructure.ApproachPoint
}

func NewMarkerApproaches(marker datastructure.ObjectMarker,
	points []datastructure.ApproachPoint) MarkerApproaches {
	return MarkerApproaches{
		marker: marker,
		points: points,
	}
}

func (m MarkerApproaches) Marker() datastructure.ObjectMarker {
	return m.marker
}

func (m MarkerApproaches) Points() []datastructure.ApproachPoint {
	return m.points
}

// ClipSummary. everything the batch endpoint reports for one clip. err is set
// when any stage failed, the other fields then hold whatever succeeded.
type ClipSummary struct {
	clipId     string
	profile    *datastructure.SpeedProfile
	report     *datastructure.ManeuverReport
	approaches []MarkerApproaches
	err        error
}

func (cs ClipSummary) ClipId() string {
	return cs.clipId
}

func (cs ClipSummary) Profile() *datastructure.SpeedProfile {
	return cs.profile
}

func (cs ClipSummary) Report() *datastructure.ManeuverReport {
	return cs.report
}

func (cs ClipSummary) Approaches() []MarkerApproaches {
	return cs.approaches
}

func (cs ClipSummary) Err() error {
	return cs.err
}

type batchJob struct {
	idx  int
	clip *datastructure.Clip
}

type batchResult struct {
	idx     int
	summary ClipSummary
}

// BatchAnalyze. fan the clips out over a worker pool and run the full
// analysis stack on each one. results keep the input order, one bad clip
// never fails the batch.
func (as *AnalyticsService) BatchAnalyze(clips []*datastructure.Clip) []ClipSummary {
	if len(clips) == 0 {
		return []ClipSummary{}
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > len(clips) {
		numWorkers = len(clips)
	}

	pool := concurrent.NewWorkerPool[batchJob, batchResult](numWorkers, len(clips))
	pool.Start(func(job batchJob) batchResult {
		return batchResult{idx: job.idx, summary: as.analyzeClip(job.clip)}
	})

	for i, clip := range clips {
		pool.AddJob(batchJob{idx: i, clip: clip})
	}
	pool.Close()
	pool.Wait()

	summaries := make([]ClipSummary, len(clips))
	for result := range pool.CollectResults() {
		summaries[result.idx] = result.summary
	}

	as.log.Info("batch analysis finished",
		zap.Int("clips", len(clips)), zap.Int("workers", numWorkers))

	return summaries
}

func (as *AnalyticsService) analyzeClip(clip *datastructure.Clip) ClipSummary {
	clipId := clip.Id()
	if clipId == "" {
		clipId = uuid.New().String()
	}
	summary := ClipSummary{clipId: clipId}

	profile, err := as.engine.Profile(clip.Points(), clip.FrameRate())
	if err != nil {
		summary.err = err
		return summary
	}
	summary.profile = profile

	report, err := as.engine.DetectManeuvers(clip.Points(), clip.FrameRate())
	if err != nil {
		summary.err = err
		return summary
	}
	summary.report = report

	for _, marker := range clip.Markers() {
		approaches, err := as.engine.LocateApproachPoints(clip.Points(), marker, nil, clip.FrameRate())
		if err != nil {
			summary.err = err
			return summary
		}
		summary.approaches = append(summary.approaches, NewMarkerApproaches(marker, approaches))
	}

	return summary
}
