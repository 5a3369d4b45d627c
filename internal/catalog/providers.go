package catalog

import (
	"github.com/goava/di"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/config"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/environments"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/handlers"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/migrations"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/routes"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/services"
	environments2 "github.com/Evolveum/integration-catalog-sub000/pkg/environments"
	"github.com/Evolveum/integration-catalog-sub000/pkg/providers"
)

func EnvConfigProviders() di.Option {
	return di.Options(
		di.Provide(environments.NewDevelopmentEnvLoader, di.Tags{"env": environments2.DevelopmentEnv}),
		di.Provide(environments.NewProductionEnvLoader, di.Tags{"env": environments2.ProductionEnv}),
		di.Provide(environments.NewTestingEnvLoader, di.Tags{"env": environments2.TestingEnv}),
	)
}

func ConfigProviders() di.Option {
	return di.Options(

		EnvConfigProviders(),
		providers.CoreConfigProviders(),

		// Configuration for the catalog service...
		di.Provide(config.NewCatalogConfig, di.As(new(environments2.ConfigModule))),

		di.Provide(environments2.Func(ServiceProviders)),
		di.Provide(migrations.New),
	)
}

func ServiceProviders() di.Option {
	return di.Options(
		di.Provide(services.NewApplicationService, di.As(new(services.ApplicationService))),
		di.Provide(services.NewVersionService, di.As(new(services.VersionService))),
		di.Provide(services.NewDispatchService, di.As(new(services.DispatchService))),
		di.Provide(services.NewPublishService, di.As(new(services.PublishService))),
		di.Provide(services.NewDownloadService, di.As(new(services.DownloadService))),
		di.Provide(services.NewRequestService, di.As(new(services.RequestService))),
		di.Provide(services.NewFacetService, di.As(new(services.FacetService))),
		di.Provide(handlers.NewUploadHandler),
		di.Provide(handlers.NewApplicationsHandler),
		di.Provide(handlers.NewVersionsHandler),
		di.Provide(handlers.NewDownloadHandler),
		di.Provide(handlers.NewRequestsHandler),
		di.Provide(handlers.NewFacetsHandler),
		di.Provide(routes.NewRouteLoader),
	)
}
