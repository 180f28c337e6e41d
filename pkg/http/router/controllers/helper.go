package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/ridelens/ridelens/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func (api *analyticsAPI) writeJSON(w http.ResponseWriter, status int, data envelope,
	headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(js)

	return nil
}

func (api *analyticsAPI) errorResponseMessage(w http.ResponseWriter, r *http.Request,
	status int, code, message string) {
	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = message

	js, err := json.Marshal(resp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(js)
}

func (api *analyticsAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponseMessage(w, r, http.StatusBadRequest, "bad_request", err.Error())
}

func (api *analyticsAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponseMessage(w, r, http.StatusNotFound, "not_found", err.Error())
}

func (api *analyticsAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("server error", zap.Error(err),
		zap.String("method", r.Method), zap.String("path", r.URL.Path))
	api.errorResponseMessage(w, r, http.StatusInternalServerError, "internal_error",
		util.MessageInternalServerError)
}

// getStatusCode. translate a service error into the matching http error
// response via the wrapped error code.
func (api *analyticsAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var uerr *util.Error
	if !errors.As(err, &uerr) {
		api.ServerErrorResponse(w, r, err)
		return
	}

	switch uerr.Code() {
	case util.ErrNotFound:
		api.NotFoundResponse(w, r, err)
	case util.ErrBadParamInput, util.ErrInvalidTimestamp:
		api.BadRequestResponse(w, r, err)
	case util.ErrConflict:
		api.errorResponseMessage(w, r, http.StatusConflict, "conflict", err.Error())
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}

	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}

	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
