package environments

import "github.com/Evolveum/integration-catalog-sub000/pkg/environments"

func NewProductionEnvLoader() environments.EnvLoader {
	return environments.SimpleEnvLoader{
		"v":                         "1",
		"enable-https":              "false",
		"enable-metrics-https":      "false",
		"enable-health-check-https": "false",
		"api-server-bindaddress":    "localhost:8000",
		"enable-sentry":             "true",
		"enable-gitlab-mock":        "false",
		"enable-jenkins-mock":       "false",
	}
}
