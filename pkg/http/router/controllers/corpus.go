package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
)

func (api *analyticsAPI) listClips(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	clips := api.corpusService.ListClips()

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewClipsResponse(clips)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *analyticsAPI) getClip(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	clipId := p.ByName("id")

	clip, err := api.corpusService.GetClip(clipId)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewClipDetailResponse(clip)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *analyticsAPI) clipProfile(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	clipId := p.ByName("id")

	profile, err := api.corpusService.ClipProfile(clipId)
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

func (api *analyticsAPI) nearestSamples(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestSamplesRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	if radius := query.Get("radius"); radius != "" {
		request.Radius, err = strconv.ParseFloat(radius, 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("radius must be a valid float"))
			return
		}
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

	samples := api.corpusService.NearestSamples(request.Lat, request.Lon, request.Radius)

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestSamplesResponse(samples)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
