package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/presenters"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/services"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/handlers"
	"github.com/Evolveum/integration-catalog-sub000/pkg/shared"
)

type ApplicationsHandler struct {
	applicationService services.ApplicationService
}

func NewApplicationsHandler(applicationService services.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{
		applicationService: applicationService,
	}
}

func (h *ApplicationsHandler) Search(w http.ResponseWriter, r *http.Request) {
	size, page, pagingErr := searchWindow(r)
	var criteria public.SearchCriteria
	cfg := &handlers.HandlerConfig{
		MarshalInto: &criteria,
		Validate: []handlers.Validate{
			func() *errors.ServiceError { return pagingErr },
		},
		Action: func() (interface{}, *errors.ServiceError) {
			applications, paging, err := h.applicationService.List(r.Context(), criteria, size, page)
			if err != nil {
				return nil, err
			}
			return presenters.PresentApplicationList(applications, paging), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			application, err := h.applicationService.Get(r.Context(), id)
			if err != nil {
				return nil, err
			}
			return presenters.PresentApplication(application), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// GetLogo serves the stored logo bytes directly, not wrapped in JSON
func (h *ApplicationsHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	logo, err := h.applicationService.GetLogo(r.Context(), id)
	if err != nil {
		shared.HandleError(r.Context(), w, err.Code, err.Reason)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(logo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(logo)
}

// searchWindow reads the {size} and {page} path segments of a search route.
// The page index is zero based.
func searchWindow(r *http.Request) (int32, int32, *errors.ServiceError) {
	vars := mux.Vars(r)
	size, err := strconv.ParseInt(vars["size"], 10, 32)
	if err != nil {
		return 0, 0, errors.Validation("page size must be an integer, got %q", vars["size"])
	}
	page, err := strconv.ParseInt(vars["page"], 10, 32)
	if err != nil {
		return 0, 0, errors.Validation("page index must be an integer, got %q", vars["page"])
	}
	return int32(size), int32(page), nil
}
