package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/onsi/gomega"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/config"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/services"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

type fakePublishService struct {
	uploadResult *services.UploadResult
	err          *errors.ServiceError

	completed []string
	failed    []string
}

var _ services.PublishService = &fakePublishService{}

func (f *fakePublishService) Upload(ctx context.Context, application *dbapi.Application, implementation *dbapi.Implementation,
	version *dbapi.ImplementationVersion, files []services.PublishFile) (*services.UploadResult, *errors.ServiceError) {
	if f.err != nil {
		return nil, f.err
	}
	return f.uploadResult, nil
}

func (f *fakePublishService) CompleteBuild(ctx context.Context, versionID string, bundleName string, connectorVersion string,
	downloadLink string, publishTimeEpochMillis int64) *errors.ServiceError {
	f.completed = append(f.completed, versionID)
	return f.err
}

func (f *fakePublishService) FailBuild(ctx context.Context, versionID string, message string) *errors.ServiceError {
	f.failed = append(f.failed, versionID)
	return f.err
}

func getHandlerParams(method string, url string, body io.Reader, t *testing.T) (*http.Request, *httptest.ResponseRecorder) {
	g := gomega.NewWithT(t)
	req, err := http.NewRequest(method, url, body)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	return req, httptest.NewRecorder()
}

func buildUploadRequest(modifyFn func(request *public.UploadRequest)) *public.UploadRequest {
	request := &public.UploadRequest{
		Application: public.ApplicationUpload{
			Name:        "openldap",
			DisplayName: "OpenLDAP",
		},
		Implementation: public.ImplementationUpload{
			Name:       "ldap-connector",
			Maintainer: "Evolveum",
			Framework:  "connid",
		},
		Version: public.VersionUpload{
			ConnectorVersion: "3.4.1",
		},
		Files: []public.FileEntry{
			{Path: "pom.xml", Content: "<project/>"},
		},
	}
	if modifyFn != nil {
		modifyFn(request)
	}
	return request
}

func Test_UploadHandler_Upload(t *testing.T) {
	g := gomega.NewWithT(t)

	tests := []struct {
		name       string
		request    *public.UploadRequest
		wantStatus int
	}{
		{
			name:       "accepted upload",
			request:    buildUploadRequest(nil),
			wantStatus: http.StatusAccepted,
		},
		{
			name: "missing application name",
			request: buildUploadRequest(func(r *public.UploadRequest) {
				r.Application.Name = ""
			}),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown framework",
			request: buildUploadRequest(func(r *public.UploadRequest) {
				r.Implementation.Framework = "soap"
			}),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing connector version",
			request: buildUploadRequest(func(r *public.UploadRequest) {
				r.Version.ConnectorVersion = ""
			}),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown capability",
			request: buildUploadRequest(func(r *public.UploadRequest) {
				r.Version.Capabilities = []string{"READ", "EXPLODE"}
			}),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "no files",
			request: buildUploadRequest(func(r *public.UploadRequest) {
				r.Files = nil
			}),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "file without a path",
			request: buildUploadRequest(func(r *public.UploadRequest) {
				r.Files = []public.FileEntry{{Content: "orphan"}}
			}),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := json.Marshal(tt.request)
			g.Expect(err).NotTo(gomega.HaveOccurred())

			h := NewUploadHandler(&fakePublishService{
				uploadResult: &services.UploadResult{
					ApplicationID:    "app-id",
					ImplementationID: "impl-id",
					VersionID:        "version-id",
					DispatchID:       "https://jenkins.example.com/queue/item/1/",
				},
			}, config.NewCatalogConfig())

			req, rw := getHandlerParams("POST", "/upload/connector", bytes.NewBuffer(payload), t)
			h.Upload(rw, req)
			g.Expect(rw.Code).To(gomega.Equal(tt.wantStatus))
		})
	}
}

func Test_UploadHandler_Callbacks(t *testing.T) {
	g := gomega.NewWithT(t)

	t.Run("continue delegates to the publish service", func(t *testing.T) {
		publish := &fakePublishService{}
		h := NewUploadHandler(publish, config.NewCatalogConfig())

		payload, err := json.Marshal(public.ContinueUploadRequest{
			BundleName:       "com.evolveum.polygon.connector-ldap",
			ConnectorVersion: "3.4.1",
			PublishTime:      1692000000000,
			DownloadLink:     "https://nexus.example.com/ldap-3.4.1.jar",
		})
		g.Expect(err).NotTo(gomega.HaveOccurred())

		req, rw := getHandlerParams("POST", "/upload/continue/version-id", bytes.NewBuffer(payload), t)
		req = mux.SetURLVars(req, map[string]string{"version_id": "version-id"})
		h.Continue(rw, req)

		g.Expect(rw.Code).To(gomega.Equal(http.StatusNoContent))
		g.Expect(publish.completed).To(gomega.Equal([]string{"version-id"}))
	})

	t.Run("continue without a download link is rejected", func(t *testing.T) {
		publish := &fakePublishService{}
		h := NewUploadHandler(publish, config.NewCatalogConfig())

		payload, err := json.Marshal(public.ContinueUploadRequest{BundleName: "bundle"})
		g.Expect(err).NotTo(gomega.HaveOccurred())

		req, rw := getHandlerParams("POST", "/upload/continue/version-id", bytes.NewBuffer(payload), t)
		req = mux.SetURLVars(req, map[string]string{"version_id": "version-id"})
		h.Continue(rw, req)

		g.Expect(rw.Code).To(gomega.Equal(http.StatusBadRequest))
		g.Expect(publish.completed).To(gomega.BeEmpty())
	})

	t.Run("fail delegates to the publish service", func(t *testing.T) {
		publish := &fakePublishService{}
		h := NewUploadHandler(publish, config.NewCatalogConfig())

		payload, err := json.Marshal(public.FailUploadRequest{ErrorMessage: "maven build failed"})
		g.Expect(err).NotTo(gomega.HaveOccurred())

		req, rw := getHandlerParams("POST", "/upload/continue/fail/version-id", bytes.NewBuffer(payload), t)
		req = mux.SetURLVars(req, map[string]string{"version_id": "version-id"})
		h.Fail(rw, req)

		g.Expect(rw.Code).To(gomega.Equal(http.StatusNoContent))
		g.Expect(publish.failed).To(gomega.Equal([]string{"version-id"}))
	})

	t.Run("fail without a message is rejected", func(t *testing.T) {
		publish := &fakePublishService{}
		h := NewUploadHandler(publish, config.NewCatalogConfig())

		req, rw := getHandlerParams("POST", "/upload/continue/fail/version-id", bytes.NewBuffer([]byte(`{}`)), t)
		req = mux.SetURLVars(req, map[string]string{"version_id": "version-id"})
		h.Fail(rw, req)

		g.Expect(rw.Code).To(gomega.Equal(http.StatusBadRequest))
		g.Expect(publish.failed).To(gomega.BeEmpty())
	})
}
