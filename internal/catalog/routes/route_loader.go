package routes

import (
	"net/http"

	"github.com/goava/di"
	"github.com/gorilla/mux"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/handlers"
	"github.com/Evolveum/integration-catalog-sub000/pkg/api"
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
	"github.com/Evolveum/integration-catalog-sub000/pkg/environments"
	coreHandlers "github.com/Evolveum/integration-catalog-sub000/pkg/handlers"
	"github.com/Evolveum/integration-catalog-sub000/pkg/logger"
	"github.com/Evolveum/integration-catalog-sub000/pkg/metrics"
)

type options struct {
	di.Inject
	ErrorsHandler       *coreHandlers.ErrorHandler
	UploadHandler       *handlers.UploadHandler
	ApplicationsHandler *handlers.ApplicationsHandler
	VersionsHandler     *handlers.VersionsHandler
	DownloadHandler     *handlers.DownloadHandler
	RequestsHandler     *handlers.RequestsHandler
	FacetsHandler       *handlers.FacetsHandler
	DB                  *db.ConnectionFactory
}

func NewRouteLoader(s options) environments.RouteLoader {
	return &s
}

func (s *options) AddRoutes(mainRouter *mux.Router) error {

	//  /api/integration_catalog
	apiRouter := mainRouter.PathPrefix("/api/integration_catalog").Subrouter()

	//  /api/integration_catalog/v1
	apiV1Router := apiRouter.PathPrefix("/v1").Subrouter()
	apiV1Router.Use(metrics.MetricsMiddleware)
	apiV1Router.Use(db.TransactionMiddleware(s.DB))

	//  /api/integration_catalog/v1/errors
	apiV1ErrorsRouter := apiV1Router.PathPrefix("/errors").Subrouter()
	apiV1ErrorsRouter.HandleFunc("", s.ErrorsHandler.List).
		Name(logger.NewLogEvent("list-errors", "list error codes").ToString()).
		Methods(http.MethodGet)
	apiV1ErrorsRouter.HandleFunc("/{id}", s.ErrorsHandler.Get).
		Name(logger.NewLogEvent("get-error", "get error code").ToString()).
		Methods(http.MethodGet)

	v1Collections := []api.CollectionMetadata{}

	//  /api/integration_catalog/v1/upload
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "upload",
		Kind: "Upload",
	})
	apiV1UploadRouter := apiV1Router.PathPrefix("/upload").Subrouter()
	apiV1UploadRouter.HandleFunc("/connector", s.UploadHandler.Upload).
		Name(logger.NewLogEvent("upload-connector", "upload a new connector version").ToString()).
		Methods(http.MethodPost)
	apiV1UploadRouter.HandleFunc("/continue/fail/{version_id}", s.UploadHandler.Fail).
		Name(logger.NewLogEvent("fail-build", "build failure callback").ToString()).
		Methods(http.MethodPost)
	apiV1UploadRouter.HandleFunc("/continue/{version_id}", s.UploadHandler.Continue).
		Name(logger.NewLogEvent("complete-build", "build success callback").ToString()).
		Methods(http.MethodPost)

	//  /api/integration_catalog/v1/download
	apiV1Router.HandleFunc("/download/{version_id}", s.DownloadHandler.Get).
		Name(logger.NewLogEvent("download-version", "download a connector artifact").ToString()).
		Methods(http.MethodGet)

	//  /api/integration_catalog/v1/applications
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "applications",
		Kind: "ApplicationList",
	})
	apiV1ApplicationsRouter := apiV1Router.PathPrefix("/applications").Subrouter()
	apiV1ApplicationsRouter.HandleFunc("/search/{size}/{page}", s.ApplicationsHandler.Search).
		Name(logger.NewLogEvent("search-applications", "search applications").ToString()).
		Methods(http.MethodPost)
	apiV1ApplicationsRouter.HandleFunc("/{id}/logo", s.ApplicationsHandler.GetLogo).
		Name(logger.NewLogEvent("get-application-logo", "get an application logo").ToString()).
		Methods(http.MethodGet)
	apiV1ApplicationsRouter.HandleFunc("/{id}", s.ApplicationsHandler.Get).
		Name(logger.NewLogEvent("get-application", "get an application").ToString()).
		Methods(http.MethodGet)

	//  /api/integration_catalog/v1/connector-versions
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "connector-versions",
		Kind: "ConnectorVersionList",
	})
	apiV1VersionsRouter := apiV1Router.PathPrefix("/connector-versions").Subrouter()
	apiV1VersionsRouter.HandleFunc("/search/{size}/{page}", s.VersionsHandler.Search).
		Name(logger.NewLogEvent("search-versions", "search connector versions").ToString()).
		Methods(http.MethodPost)
	apiV1VersionsRouter.HandleFunc("/{id}", s.VersionsHandler.Get).
		Name(logger.NewLogEvent("get-version", "get a connector version").ToString()).
		Methods(http.MethodGet)

	//  /api/integration_catalog/v1/requests
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "requests",
		Kind: "AppRequestList",
	})
	apiV1RequestsRouter := apiV1Router.PathPrefix("/requests").Subrouter()
	apiV1RequestsRouter.HandleFunc("", s.RequestsHandler.Create).
		Name(logger.NewLogEvent("create-request", "request a new application").ToString()).
		Methods(http.MethodPost)
	apiV1RequestsRouter.HandleFunc("", s.RequestsHandler.List).
		Name(logger.NewLogEvent("list-requests", "list application requests").ToString()).
		Methods(http.MethodGet)
	apiV1RequestsRouter.HandleFunc("/{id}/vote", s.RequestsHandler.Vote).
		Name(logger.NewLogEvent("vote-request", "vote for an application request").ToString()).
		Methods(http.MethodPost)
	apiV1RequestsRouter.HandleFunc("/{id}", s.RequestsHandler.Get).
		Name(logger.NewLogEvent("get-request", "get an application request").ToString()).
		Methods(http.MethodGet)

	//  /api/integration_catalog/v1/application-tags
	apiV1Router.HandleFunc("/application-tags", s.FacetsHandler.Tags).
		Name(logger.NewLogEvent("list-tags", "list application tags").ToString()).
		Methods(http.MethodGet)

	//  /api/integration_catalog/v1/countries-of-origin
	apiV1Router.HandleFunc("/countries-of-origin", s.FacetsHandler.Countries).
		Name(logger.NewLogEvent("list-countries", "list countries of origin").ToString()).
		Methods(http.MethodGet)

	v1Metadata := api.VersionMetadata{
		ID:          "v1",
		Collections: v1Collections,
	}
	apiMetadata := api.Metadata{
		ID: "integration_catalog",
		Versions: []api.VersionMetadata{
			v1Metadata,
		},
	}

	apiRouter.HandleFunc("", apiMetadata.ServeHTTP).Methods(http.MethodGet)
	apiV1Router.HandleFunc("", v1Metadata.ServeHTTP).Methods(http.MethodGet)

	return nil
}
