package handlers

import (
	"net/http"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/presenters"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/services"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/handlers"
)

type FacetsHandler struct {
	facetService services.FacetService
}

func NewFacetsHandler(facetService services.FacetService) *FacetsHandler {
	return &FacetsHandler{
		facetService: facetService,
	}
}

func (h *FacetsHandler) Tags(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			tags, err := h.facetService.Tags(r.Context())
			if err != nil {
				return nil, err
			}
			return presenters.PresentTagList(tags), nil
		},
	}
	handlers.HandleList(w, r, cfg)
}

func (h *FacetsHandler) Countries(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			countries, err := h.facetService.Countries(r.Context())
			if err != nil {
				return nil, err
			}
			return presenters.PresentCountryList(countries), nil
		},
	}
	handlers.HandleList(w, r, cfg)
}
