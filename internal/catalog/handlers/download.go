package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/services"
	"github.com/Evolveum/integration-catalog-sub000/pkg/shared"
)

type DownloadHandler struct {
	downloadService services.DownloadService
}

func NewDownloadHandler(downloadService services.DownloadService) *DownloadHandler {
	return &DownloadHandler{
		downloadService: downloadService,
	}
}

// Get streams the version's artifact from its download link. The filename is
// the last path segment of the link.
func (h *DownloadHandler) Get(w http.ResponseWriter, r *http.Request) {
	versionID := mux.Vars(r)["version_id"]

	body, filename, err := h.downloadService.Resolve(r.Context(), versionID, r.RemoteAddr, r.UserAgent())
	if err != nil {
		shared.HandleError(r.Context(), w, err.Code, err.Reason)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}
