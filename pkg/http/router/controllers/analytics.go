package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/ridelens/ridelens/pkg/datastructure"
	helper "github.com/ridelens/ridelens/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type analyticsAPI struct {
	analyticsService AnalyticsService
	corpusService    CorpusService
	log              *zap.Logger
}

func New(analyticsService AnalyticsService, corpusService CorpusService, log *zap.Logger) *analyticsAPI {
	return &analyticsAPI{
		analyticsService: analyticsService,
		corpusService:    corpusService,
		log:              log,
	}
}

func (api *analyticsAPI) Routes(group *helper.RouteGroup) {
	group.POST("/analytics/profile", api.speedProfile)
	group.POST("/analytics/smooth", api.smooth)
	group.POST("/analytics/maneuvers", api.maneuvers)
	group.POST("/analytics/approach-points", api.approachPoints)
	group.POST("/analytics/closest-approach", api.closestApproach)
	group.POST("/analytics/batch", api.batchAnalyze)

	group.GET("/corpus/clips", api.listClips)
	group.GET("/corpus/clips/:id", api.getClip)
	group.GET("/corpus/clips/:id/profile", api.clipProfile)
	group.GET("/corpus/nearest", api.nearestSamples)
}

func (api *analyticsAPI) speedProfile(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request speedProfileRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	profile, err := api.analyticsService.SpeedProfile(ToDataPoints(request.Points), request.FrameRate)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSpeedProfileResponse(profile)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *analyticsAPI) smooth(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request smoothRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	smoothed, trackPolyline, err := api.analyticsService.Smooth(ToDataPoints(request.Points),
		request.Policy, request.WindowSize)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSmoothResponse(smoothed, trackPolyline)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *analyticsAPI) maneuvers(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request maneuversRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	report, err := api.analyticsService.Maneuvers(ToDataPoints(request.Points), request.FrameRate)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewManeuverReportResponse(report)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *analyticsAPI) approachPoints(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request approachPointsRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	approaches, err := api.analyticsService.ApproachPoints(ToDataPoints(request.Points),
		request.Marker.ToDataMarker(), request.Targets, request.FrameRate)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewApproachPointsResponse(approaches)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *analyticsAPI) closestApproach(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request closestApproachRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	closest, _, err := api.analyticsService.ClosestApproach(ToDataPoints(request.Points),
		request.Marker.ToDataMarker())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewClosestApproachResponse(closest)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *analyticsAPI) batchAnalyze(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request batchAnalyzeRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	clips := make([]*datastructure.Clip, 0, len(request.Clips))
	for _, clipReq := range request.Clips {
		clips = append(clips, clipReq.ToDataClip())
	}

	summaries := api.analyticsService.BatchAnalyze(clips)

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewBatchAnalyzeResponse(summaries)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
