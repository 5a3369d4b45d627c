package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/presenters"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/services"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/handlers"
	coreServices "github.com/Evolveum/integration-catalog-sub000/pkg/services"
)

type RequestsHandler struct {
	requestService services.RequestService
}

func NewRequestsHandler(requestService services.RequestService) *RequestsHandler {
	return &RequestsHandler{
		requestService: requestService,
	}
}

func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.AppRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.Validation("name", &payload.Name, handlers.MinLen(1), handlers.MaxLen(255)),
			handlers.Validation("requester", &payload.Requester, handlers.MinLen(1)),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			request := presenters.ConvertAppRequest(payload)
			if err := h.requestService.Create(r.Context(), request); err != nil {
				return nil, err
			}
			return presenters.PresentAppRequest(request, 0), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

func (h *RequestsHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.Validation("Unable to list application requests: %s", err)
			}
			requests, paging, err := h.requestService.List(r.Context(), int32(listArgs.Size), int32(listArgs.Page))
			if err != nil {
				return nil, err
			}
			votes := map[string]int64{}
			for _, request := range requests {
				count, err := h.requestService.CountVotes(r.Context(), request.ID)
				if err != nil {
					return nil, err
				}
				votes[request.ID] = count
			}
			return presenters.PresentAppRequestList(requests, votes, paging), nil
		},
	}
	handlers.HandleList(w, r, cfg)
}

func (h *RequestsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			request, err := h.requestService.Get(r.Context(), id)
			if err != nil {
				return nil, err
			}
			votes, err := h.requestService.CountVotes(r.Context(), id)
			if err != nil {
				return nil, err
			}
			return presenters.PresentAppRequest(request, votes), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Vote records one (request, voter) pair; a duplicate vote is a conflict
func (h *RequestsHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var payload public.VotePayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.Validation("voter", &payload.Voter, handlers.MinLen(1), handlers.MaxLen(255)),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			return nil, h.requestService.Vote(r.Context(), id, payload.Voter)
		},
	}
	handlers.Handle(w, r, cfg, http.StatusNoContent)
}
