package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Evolveum/integration-catalog-sub000/pkg/api"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/logger"
	"github.com/Evolveum/integration-catalog-sub000/pkg/services"
)

func NewErrorsHandler() *ErrorHandler {
	return &ErrorHandler{}
}

type ErrorHandler struct{}

func (h ErrorHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := services.NewListArguments(r.URL.Query())
			allErrors := errors.Errors()

			// Sort errors by code
			sort.SliceStable(allErrors, func(i, j int) bool {
				return allErrors[i].Code < allErrors[j].Code
			})

			operationID := logger.GetOperationID(r.Context())
			list, total := DetermineListRange(allErrors, listArgs.Page, listArgs.Size)
			errorList := api.ErrorList{
				Kind:  "ErrorList",
				Page:  int32(listArgs.Page),
				Size:  int32(len(list)),
				Total: int32(total),
				Items: []errors.Error{},
			}
			for _, e := range list {
				err := e.(errors.ServiceError)
				errorList.Items = append(errorList.Items, err.AsOpenapiError(operationID))
			}

			return errorList, nil
		},
	}

	HandleList(w, r, cfg)
}

func (h ErrorHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			id := mux.Vars(r)["id"]
			value, err := strconv.Atoi(id)
			if err != nil {
				return nil, errors.NotFound("No error with id %s exists", id)
			}
			code := errors.ServiceErrorCode(value)
			exists, sErr := errors.Find(code)
			if !exists {
				return nil, errors.NotFound("No error with id %s exists", id)
			}
			return sErr.AsOpenapiError(logger.GetOperationID(r.Context())), nil
		},
	}

	HandleGet(w, r, cfg)
}
