package providers

import (
	"github.com/goava/di"

	"github.com/Evolveum/integration-catalog-sub000/pkg/client/gitlab"
	"github.com/Evolveum/integration-catalog-sub000/pkg/client/jenkins"
	"github.com/Evolveum/integration-catalog-sub000/pkg/cmd/migrate"
	"github.com/Evolveum/integration-catalog-sub000/pkg/cmd/serve"
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
	"github.com/Evolveum/integration-catalog-sub000/pkg/environments"
	"github.com/Evolveum/integration-catalog-sub000/pkg/handlers"
	"github.com/Evolveum/integration-catalog-sub000/pkg/server"
	"github.com/Evolveum/integration-catalog-sub000/pkg/services/sentry"
)

func CoreConfigProviders() di.Option {
	return di.Options(
		di.Provide(func(env *environments.Env) environments.EnvName {
			return environments.EnvName(env.Name)
		}),

		// Add config types
		di.Provide(db.NewDatabaseConfig, di.As(new(environments.ConfigModule))),
		di.Provide(server.NewServerConfig, di.As(new(environments.ConfigModule))),
		di.Provide(server.NewHealthCheckConfig, di.As(new(environments.ConfigModule))),
		di.Provide(server.NewMetricsConfig, di.As(new(environments.ConfigModule))),
		di.Provide(gitlab.NewConfig, di.As(new(environments.ConfigModule))),
		di.Provide(jenkins.NewConfig, di.As(new(environments.ConfigModule))),

		// Add common CLI sub commands
		di.Provide(serve.NewServeCommand),
		di.Provide(migrate.NewMigrateCommand),

		// Add other core config providers..
		sentry.ConfigProviders(),

		di.Provide(environments.Func(CoreServiceProviders)),
	)
}

func CoreServiceProviders() di.Option {
	return di.Options(
		di.Provide(db.NewConnectionFactory),
		di.Provide(gitlab.NewClient),
		di.Provide(jenkins.NewClient),
		di.Provide(handlers.NewErrorsHandler),

		// Types registered as a BootService are started when the env is started
		di.Provide(server.NewAPIServer, di.As(new(environments.BootService))),
		di.Provide(server.NewMetricsServer, di.As(new(environments.BootService))),
		di.Provide(server.NewHealthCheckServer, di.As(new(environments.BootService))),
	)
}
