package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/shared"
)

type HandlerConfig struct {
	// MarshalInto optionally receives the decoded request body
	MarshalInto  interface{}
	Validate     []Validate
	Action       HttpAction
	ErrorHandler ErrorHandlerFunc
}

type Validate func() *errors.ServiceError
type HttpAction func() (interface{}, *errors.ServiceError)
type ErrorHandlerFunc func(r *http.Request, w http.ResponseWriter, cfg *HandlerConfig, err *errors.ServiceError)

func errorHandler(r *http.Request, w http.ResponseWriter, cfg *HandlerConfig, err *errors.ServiceError) {
	if cfg.ErrorHandler != nil {
		cfg.ErrorHandler(r, w, cfg, err)
	} else {
		shared.HandleError(r.Context(), w, err.Code, err.Reason)
	}
}

// Handle decodes the request body into cfg.MarshalInto, runs the validations
// and the action, then writes the action result with the given status code.
func Handle(w http.ResponseWriter, r *http.Request, cfg *HandlerConfig, httpStatus int) {
	if cfg.MarshalInto != nil {
		if err := unmarshalRequest(r, cfg.MarshalInto); err != nil {
			errorHandler(r, w, cfg, err)
			return
		}
	}

	for _, v := range cfg.Validate {
		if err := v(); err != nil {
			errorHandler(r, w, cfg, err)
			return
		}
	}

	result, serviceErr := cfg.Action()
	if serviceErr != nil {
		errorHandler(r, w, cfg, serviceErr)
		return
	}

	shared.WriteJSONResponse(w, httpStatus, result)
}

func HandleGet(w http.ResponseWriter, r *http.Request, cfg *HandlerConfig) {
	Handle(w, r, cfg, http.StatusOK)
}

func HandleList(w http.ResponseWriter, r *http.Request, cfg *HandlerConfig) {
	for _, v := range cfg.Validate {
		if err := v(); err != nil {
			errorHandler(r, w, cfg, err)
			return
		}
	}

	results, serviceErr := cfg.Action()
	if serviceErr != nil {
		errorHandler(r, w, cfg, serviceErr)
		return
	}

	shared.WriteJSONResponse(w, http.StatusOK, results)
}

func HandleDelete(w http.ResponseWriter, r *http.Request, cfg *HandlerConfig, httpStatus int) {
	for _, v := range cfg.Validate {
		if err := v(); err != nil {
			errorHandler(r, w, cfg, err)
			return
		}
	}

	result, serviceErr := cfg.Action()
	if serviceErr != nil {
		errorHandler(r, w, cfg, serviceErr)
		return
	}

	shared.WriteJSONResponse(w, httpStatus, result)
}

func unmarshalRequest(r *http.Request, into interface{}) *errors.ServiceError {
	if r.Body == nil {
		return errors.MalformedRequest("Empty request body")
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.MalformedRequest("Unable to read request body: %s", err)
	}
	if len(payload) == 0 {
		return errors.MalformedRequest("Empty request body")
	}
	if err := json.Unmarshal(payload, into); err != nil {
		return errors.MalformedRequest("Invalid request format: %s", err)
	}
	return nil
}
