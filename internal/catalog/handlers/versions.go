package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/presenters"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/services"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/handlers"
)

type VersionsHandler struct {
	versionService services.VersionService
}

func NewVersionsHandler(versionService services.VersionService) *VersionsHandler {
	return &VersionsHandler{
		versionService: versionService,
	}
}

func (h *VersionsHandler) Search(w http.ResponseWriter, r *http.Request) {
	size, page, pagingErr := searchWindow(r)
	var criteria public.SearchCriteria
	cfg := &handlers.HandlerConfig{
		MarshalInto: &criteria,
		Validate: []handlers.Validate{
			func() *errors.ServiceError { return pagingErr },
		},
		Action: func() (interface{}, *errors.ServiceError) {
			versions, paging, err := h.versionService.List(r.Context(), criteria, size, page)
			if err != nil {
				return nil, err
			}
			return presenters.PresentConnectorVersionList(versions, paging), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

func (h *VersionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			version, err := h.versionService.Get(r.Context(), id)
			if err != nil {
				return nil, err
			}
			downloads, err := h.versionService.CountDownloads(r.Context(), id)
			if err != nil {
				return nil, err
			}
			return presenters.PresentConnectorVersion(version, downloads), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}
