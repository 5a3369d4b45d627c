package sentry

import (
	"github.com/goava/di"

	"github.com/Evolveum/integration-catalog-sub000/pkg/environments"
)

func ConfigProviders() di.Option {
	return di.Options(
		di.Provide(NewConfig, di.As(new(environments.ConfigModule))),
		di.ProvideValue(environments.AfterCreateServicesHook{
			Func: Initialize,
		}),
	)
}
