package controllers

import (
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/http/usecases"
)

type trajectoryPointRequest struct {
	FrameIndex int      `json:"frame_index" validate:"min=0"`
	Timestamp  string   `json:"timestamp"`
	Lat        float64  `json:"lat" validate:"min=-90,max=90"`
	Lon        float64  `json:"lon" validate:"min=-180,max=180"`
	SpeedKmh   *float64 `json:"speed_kmh,omitempty"`
}

func (p trajectoryPointRequest) ToDataPoint() datastructure.TrajectoryPoint {
	point := datastructure.NewTrajectoryPoint(p.FrameIndex, p.Timestamp, p.Lat, p.Lon)
	if p.SpeedKmh != nil {
		point = point.WithSpeed(*p.SpeedKmh)
	}
	return point
}

func ToDataPoints(reqs []trajectoryPointRequest) []datastructure.TrajectoryPoint {
	points := make([]datastructure.TrajectoryPoint, 0, len(reqs))
	for _, req := range reqs {
		points = append(points, req.ToDataPoint())
	}
	return points
}

type objectMarkerRequest struct {
	FrameIndex int     `json:"frame_index" validate:"min=0"`
	Timestamp  string  `json:"timestamp"`
	Lat        float64 `json:"lat" validate:"min=-90,max=90"`
	Lon        float64 `json:"lon" validate:"min=-180,max=180"`
	Label      string  `json:"label"`
}

func (m objectMarkerRequest) ToDataMarker() datastructure.ObjectMarker {
	return datastructure.NewObjectMarker(m.FrameIndex, m.Timestamp, m.Lat, m.Lon, m.Label)
}

type speedProfileRequest struct {
	FrameRate float64                  `json:"frame_rate" validate:"required,gt=0"`
	Points    []trajectoryPointRequest `json:"points" validate:"required,dive"`
}

type smoothRequest struct {
	Policy     string                   `json:"policy" validate:"required,oneof=rolling_window kalman"`
	WindowSize int                      `json:"window_size" validate:"min=0"`
	Points     []trajectoryPointRequest `json:"points" validate:"required,dive"`
}

type maneuversRequest struct {
	FrameRate float64                  `json:"frame_rate" validate:"required,gt=0"`
	Points    []trajectoryPointRequest `json:"points" validate:"required,dive"`
}

type approachPointsRequest struct {
	FrameRate float64                  `json:"frame_rate" validate:"required,gt=0"`
	Points    []trajectoryPointRequest `json:"points" validate:"required,dive"`
	Marker    objectMarkerRequest      `json:"marker"`
	Targets   []float64                `json:"targets" validate:"omitempty,dive,gt=0"`
}

type closestApproachRequest struct {
	Points []trajectoryPointRequest `json:"points" validate:"required,dive"`
	Marker objectMarkerRequest      `json:"marker"`
}

type batchClipRequest struct {
	ClipId    string                   `json:"clip_id"`
	FrameRate float64                  `json:"frame_rate" validate:"required,gt=0"`
	Points    []trajectoryPointRequest `json:"points" validate:"required,dive"`
	Markers   []objectMarkerRequest    `json:"markers" validate:"omitempty,dive"`
}

func (b batchClipRequest) ToDataClip() *datastructure.Clip {
	markers := make([]datastructure.ObjectMarker, 0, len(b.Markers))
	for _, m := range b.Markers {
		markers = append(markers, m.ToDataMarker())
	}
	return datastructure.NewClip(b.ClipId, b.FrameRate, ToDataPoints(b.Points), markers)
}

type batchAnalyzeRequest struct {
	Clips []batchClipRequest `json:"clips" validate:"required,min=1,max=64,dive"`
}

type nearestSamplesRequest struct {
	Lat    float64 `json:"lat" validate:"min=-90,max=90"`
	Lon    float64 `json:"lon" validate:"min=-180,max=180"`
	Radius float64 `json:"radius" validate:"omitempty,gt=0,max=50000"`
}

type liveAnalyzeRequest struct {
	FrameRate float64                  `json:"frame_rate" validate:"required,gt=0"`
	Points    []trajectoryPointRequest `json:"points" validate:"required,dive"`
	Marker    *objectMarkerRequest     `json:"marker,omitempty"`
}

type trajectoryPointResponse struct {
	FrameIndex int      `json:"frame_index"`
	Timestamp  string   `json:"timestamp,omitempty"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	SpeedKmh   *float64 `json:"speed_kmh,omitempty"`
}

func NewTrajectoryPointsResponse(points []datastructure.TrajectoryPoint) []trajectoryPointResponse {
	out := make([]trajectoryPointResponse, 0, len(points))
	for _, p := range points {
		resp := trajectoryPointResponse{
			FrameIndex: p.FrameIndex(),
			Timestamp:  p.Timestamp(),
			Lat:        p.Lat(),
			Lon:        p.Lon(),
		}
		if speed, ok := p.Speed(); ok {
			resp.SpeedKmh = &speed
		}
		out = append(out, resp)
	}
	return out
}

type objectMarkerResponse struct {
	FrameIndex int     `json:"frame_index"`
	Timestamp  string  `json:"timestamp,omitempty"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Label      string  `json:"label,omitempty"`
}

func NewObjectMarkerResponse(marker datastructure.ObjectMarker) objectMarkerResponse {
	return objectMarkerResponse{
		FrameIndex: marker.FrameIndex(),
		Timestamp:  marker.Timestamp(),
		Lat:        marker.Lat(),
		Lon:        marker.Lon(),
		Label:      marker.Label(),
	}
}

type kinematicSampleResponse struct {
	DistanceMeters  float64  `json:"distance_meters"`
	DurationSeconds float64  `json:"duration_seconds"`
	SpeedMS         float64  `json:"speed_ms"`
	SpeedKmh        float64  `json:"speed_kmh"`
	BearingDegrees  float64  `json:"bearing_degrees"`
	AccelerationMS2 *float64 `json:"acceleration_ms2,omitempty"`
	Reliability     float64  `json:"reliability"`
}

type speedProfileResponse struct {
	Samples             []kinematicSampleResponse `json:"samples"`
	CumulativeMeters    []float64                 `json:"cumulative_meters"`
	TotalDistanceMeters float64                   `json:"total_distance_meters"`
	SmoothedSpeedsKmh   []float64                 `json:"smoothed_speeds_kmh"`
	MaxSpeedKmh         float64                   `json:"max_speed_kmh"`
	AvgSpeedKmh         float64                   `json:"avg_speed_kmh"`
	MedianSpeedKmh      float64                   `json:"median_speed_kmh"`
	P85SpeedKmh         float64                   `json:"p85_speed_kmh"`
}

func NewSpeedProfileResponse(profile *datastructure.SpeedProfile) speedProfileResponse {
	samples := make([]kinematicSampleResponse, 0, len(profile.Samples()))
	for _, s := range profile.Samples() {
		sample := kinematicSampleResponse{
			DistanceMeters:  s.DistanceMeters(),
			DurationSeconds: s.DurationSeconds(),
			SpeedMS:         s.SpeedMS(),
			SpeedKmh:        s.SpeedKmh(),
			BearingDegrees:  s.BearingDegrees(),
			Reliability:     s.Reliability(),
		}
		if accel, ok := s.Acceleration(); ok {
			sample.AccelerationMS2 = &accel
		}
		samples = append(samples, sample)
	}

	return speedProfileResponse{
		Samples:             samples,
		CumulativeMeters:    profile.CumulativeMeters(),
		TotalDistanceMeters: profile.TotalDistanceMeters(),
		SmoothedSpeedsKmh:   profile.SmoothedSpeedsKmh(),
		MaxSpeedKmh:         profile.MaxSpeedKmh(),
		AvgSpeedKmh:         profile.AvgSpeedKmh(),
		MedianSpeedKmh:      profile.MedianSpeedKmh(),
		P85SpeedKmh:         profile.P85SpeedKmh(),
	}
}

type smoothResponse struct {
	Points        []trajectoryPointResponse `json:"points"`
	TrackPolyline string                    `json:"track_polyline"`
}

func NewSmoothResponse(points []datastructure.TrajectoryPoint, trackPolyline string) smoothResponse {
	return smoothResponse{
		Points:        NewTrajectoryPointsResponse(points),
		TrackPolyline: trackPolyline,
	}
}

type maneuverSegmentResponse struct {
	Kind                string  `json:"kind"`
	StartIndex          int     `json:"start_index"`
	EndIndex            int     `json:"end_index"`
	MeanAccelerationMS2 float64 `json:"mean_acceleration_ms2"`
}

type turnEventResponse struct {
	Index        int     `json:"index"`
	AngleDegrees float64 `json:"angle_degrees"`
}

type maneuverReportResponse struct {
	HardBraking       []maneuverSegmentResponse `json:"hard_braking"`
	RapidAcceleration []maneuverSegmentResponse `json:"rapid_acceleration"`
	SharpTurns        []turnEventResponse       `json:"sharp_turns"`
}

func newManeuverSegmentsResponse(segments []datastructure.ManeuverSegment) []maneuverSegmentResponse {
	out := make([]maneuverSegmentResponse, 0, len(segments))
	for _, seg := range segments {
		out = append(out, maneuverSegmentResponse{
			Kind:                seg.Kind().String(),
			StartIndex:          seg.StartIndex(),
			EndIndex:            seg.EndIndex(),
			MeanAccelerationMS2: seg.MeanAcceleration(),
		})
	}
	return out
}

func NewManeuverReportResponse(report *datastructure.ManeuverReport) maneuverReportResponse {
	turns := make([]turnEventResponse, 0, len(report.SharpTurns()))
	for _, turn := range report.SharpTurns() {
		turns = append(turns, turnEventResponse{
			Index:        turn.Index(),
			AngleDegrees: turn.AngleDegrees(),
		})
	}

	return maneuverReportResponse{
		HardBraking:       newManeuverSegmentsResponse(report.HardBraking()),
		RapidAcceleration: newManeuverSegmentsResponse(report.RapidAcceleration()),
		SharpTurns:        turns,
	}
}

type approachPointResponse struct {
	TargetDistanceMeters   float64  `json:"target_distance_meters"`
	Lat                    float64  `json:"lat"`
	Lon                    float64  `json:"lon"`
	FrameIndex             int      `json:"frame_index"`
	Timestamp              string   `json:"timestamp,omitempty"`
	TimeOffsetSeconds      float64  `json:"time_offset_seconds"`
	BearingToMarkerDegrees float64  `json:"bearing_to_marker_degrees"`
	SpeedKmh               *float64 `json:"speed_kmh,omitempty"`
	Interpolated           bool     `json:"interpolated"`
}

func NewApproachPointsResponse(points []datastructure.ApproachPoint) []approachPointResponse {
	out := make([]approachPointResponse, 0, len(points))
	for _, p := range points {
		resp := approachPointResponse{
			TargetDistanceMeters:   p.TargetDistance(),
			Lat:                    p.Lat(),
			Lon:                    p.Lon(),
			FrameIndex:             p.FrameIndex(),
			Timestamp:              p.Timestamp(),
			TimeOffsetSeconds:      p.TimeOffsetSeconds(),
			BearingToMarkerDegrees: p.BearingToMarker(),
			Interpolated:           p.Interpolated(),
		}
		if speed, ok := p.Speed(); ok {
			resp.SpeedKmh = &speed
		}
		out = append(out, resp)
	}
	return out
}

type closestApproachResponse struct {
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	SegmentIndex   int     `json:"segment_index"`
	DistanceMeters float64 `json:"distance_meters"`
}

func NewClosestApproachResponse(closest datastructure.ClosestApproach) closestApproachResponse {
	return closestApproachResponse{
		Lat:            closest.Lat(),
		Lon:            closest.Lon(),
		SegmentIndex:   closest.SegmentIndex(),
		DistanceMeters: closest.DistanceMeters(),
	}
}

type liveAnalyzeResponse struct {
	Profile    speedProfileResponse    `json:"profile"`
	Maneuvers  maneuverReportResponse  `json:"maneuvers"`
	Approaches []approachPointResponse `json:"approaches,omitempty"`
}

type markerApproachesResponse struct {
	Marker objectMarkerResponse    `json:"marker"`
	Points []approachPointResponse `json:"points"`
}

type clipSummaryResponse struct {
	ClipId     string                     `json:"clip_id"`
	Profile    *speedProfileResponse      `json:"profile,omitempty"`
	Maneuvers  *maneuverReportResponse    `json:"maneuvers,omitempty"`
	Approaches []markerApproachesResponse `json:"approaches,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

func NewBatchAnalyzeResponse(summaries []usecases.ClipSummary) []clipSummaryResponse {
	out := make([]clipSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		resp := clipSummaryResponse{ClipId: summary.ClipId()}

		if summary.Err() != nil {
			resp.Error = summary.Err().Error()
		}
		if summary.Profile() != nil {
			profile := NewSpeedProfileResponse(summary.Profile())
			resp.Profile = &profile
		}
		if summary.Report() != nil {
			report := NewManeuverReportResponse(summary.Report())
			resp.Maneuvers = &report
		}
		for _, approach := range summary.Approaches() {
			resp.Approaches = append(resp.Approaches, markerApproachesResponse{
				Marker: NewObjectMarkerResponse(approach.Marker()),
				Points: NewApproachPointsResponse(approach.Points()),
			})
		}

		out = append(out, resp)
	}
	return out
}

type clipResponse struct {
	ClipId     string  `json:"clip_id"`
	FrameRate  float64 `json:"frame_rate"`
	NumPoints  int     `json:"num_points"`
	NumMarkers int     `json:"num_markers"`
}

func NewClipsResponse(clips []*datastructure.Clip) []clipResponse {
	out := make([]clipResponse, 0, len(clips))
	for _, clip := range clips {
		out = append(out, clipResponse{
			ClipId:     clip.Id(),
			FrameRate:  clip.FrameRate(),
			NumPoints:  clip.NumPoints(),
			NumMarkers: len(clip.Markers()),
		})
	}
	return out
}

type clipDetailResponse struct {
	ClipId    string                    `json:"clip_id"`
	FrameRate float64                   `json:"frame_rate"`
	Points    []trajectoryPointResponse `json:"points"`
	Markers   []objectMarkerResponse    `json:"markers"`
}

func NewClipDetailResponse(clip *datastructure.Clip) clipDetailResponse {
	markers := make([]objectMarkerResponse, 0, len(clip.Markers()))
	for _, marker := range clip.Markers() {
		markers = append(markers, NewObjectMarkerResponse(marker))
	}

	return clipDetailResponse{
		ClipId:    clip.Id(),
		FrameRate: clip.FrameRate(),
		Points:    NewTrajectoryPointsResponse(clip.Points()),
		Markers:   markers,
	}
}

type nearbySampleResponse struct {
	ClipId         string  `json:"clip_id"`
	PointIndex     int     `json:"point_index"`
	FrameIndex     int     `json:"frame_index"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	DistanceMeters float64 `json:"distance_meters"`
}

func NewNearestSamplesResponse(samples []usecases.NearbySample) []nearbySampleResponse {
	out := make([]nearbySampleResponse, 0, len(samples))
	for _, sample := range samples {
		out = append(out, nearbySampleResponse{
			ClipId:         sample.ClipId(),
			PointIndex:     sample.PointIndex(),
			FrameIndex:     sample.FrameIndex(),
			Lat:            sample.Lat(),
			Lon:            sample.Lon(),
			DistanceMeters: sample.DistanceMeters(),
		})
	}
	return out
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
