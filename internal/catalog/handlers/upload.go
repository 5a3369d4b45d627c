package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/config"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/presenters"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/services"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/handlers"
)

var (
	validFrameworks      = frameworkValues(dbapi.AllFrameworks)
	validBuildFrameworks = buildFrameworkValues(dbapi.AllBuildFrameworks)
)

type UploadHandler struct {
	publishService services.PublishService
	catalogConfig  *config.CatalogConfig
}

func NewUploadHandler(publishService services.PublishService, catalogConfig *config.CatalogConfig) *UploadHandler {
	return &UploadHandler{
		publishService: publishService,
		catalogConfig:  catalogConfig,
	}
}

// Upload initiates a publish. The build is dispatched synchronously; its
// outcome arrives later through the Continue and Fail callbacks.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var request public.UploadRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &request,
		Validate: []handlers.Validate{
			handlers.Validation("application.name", &request.Application.Name, handlers.MinLen(1), handlers.MaxLen(255)),
			handlers.Validation("implementation.name", &request.Implementation.Name, handlers.MinLen(1), handlers.MaxLen(255)),
			handlers.Validation("implementation.maintainer", &request.Implementation.Maintainer, handlers.MinLen(1)),
			handlers.Validation("implementation.framework", &request.Implementation.Framework, handlers.IsOneOf(validFrameworks...)),
			handlers.Validation("version.connector_version", &request.Version.ConnectorVersion, handlers.MinLen(1)),
			handlers.Validation("version.build_framework", &request.Version.BuildFramework,
				handlers.WithDefault(string(dbapi.BuildFrameworkMaven)), handlers.IsOneOf(validBuildFrameworks...)),
			h.validateCapabilities(&request),
			h.validateFiles(&request),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			application, implementation, version, files, err := presenters.ConvertUploadRequest(request)
			if err != nil {
				return nil, err
			}
			result, err := h.publishService.Upload(r.Context(), application, implementation, version, files)
			if err != nil {
				return nil, err
			}
			return presenters.PresentUploadAccepted(result), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusAccepted)
}

// Continue is the CI success callback, replay safe per version
func (h *UploadHandler) Continue(w http.ResponseWriter, r *http.Request) {
	versionID := mux.Vars(r)["version_id"]
	var request public.ContinueUploadRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &request,
		Validate: []handlers.Validate{
			handlers.Validation("version_id", &versionID, handlers.MinLen(1)),
			handlers.Validation("download_link", &request.DownloadLink, handlers.MinLen(1)),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			return nil, h.publishService.CompleteBuild(r.Context(), versionID,
				request.BundleName, request.ConnectorVersion, request.DownloadLink, request.PublishTime)
		},
	}
	handlers.Handle(w, r, cfg, http.StatusNoContent)
}

// Fail is the CI failure callback, replay safe per version
func (h *UploadHandler) Fail(w http.ResponseWriter, r *http.Request) {
	versionID := mux.Vars(r)["version_id"]
	var request public.FailUploadRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &request,
		Validate: []handlers.Validate{
			handlers.Validation("version_id", &versionID, handlers.MinLen(1)),
			handlers.Validation("error_message", &request.ErrorMessage, handlers.MinLen(1)),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			return nil, h.publishService.FailBuild(r.Context(), versionID, request.ErrorMessage)
		},
	}
	handlers.Handle(w, r, cfg, http.StatusNoContent)
}

func (h *UploadHandler) validateCapabilities(request *public.UploadRequest) handlers.Validate {
	return func() *errors.ServiceError {
		for _, capability := range request.Version.Capabilities {
			valid := false
			for _, known := range dbapi.AllCapabilities {
				if capability == known {
					valid = true
					break
				}
			}
			if !valid {
				return errors.Validation("version.capabilities contains unknown capability %q", capability)
			}
		}
		return nil
	}
}

func (h *UploadHandler) validateFiles(request *public.UploadRequest) handlers.Validate {
	return func() *errors.ServiceError {
		if len(request.Files) == 0 {
			return errors.Validation("files must contain at least one entry")
		}
		if len(request.Files) > h.catalogConfig.MaxUploadFiles {
			return errors.Validation("files must not contain more than %d entries", h.catalogConfig.MaxUploadFiles)
		}
		for i, file := range request.Files {
			if file.Path == "" {
				return errors.Validation("files[%d].path is required", i)
			}
		}
		return nil
	}
}

func frameworkValues(values []dbapi.FrameworkEnum) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, string(v))
	}
	return result
}

func buildFrameworkValues(values []dbapi.BuildFrameworkEnum) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, string(v))
	}
	return result
}
