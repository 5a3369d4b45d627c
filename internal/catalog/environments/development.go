package environments

import "github.com/Evolveum/integration-catalog-sub000/pkg/environments"

// The development environment is intended for use while developing features, requiring manual verification
func NewDevelopmentEnvLoader() environments.EnvLoader {
	return environments.SimpleEnvLoader{
		"v":                         "10",
		"enable-https":              "false",
		"enable-metrics-https":      "false",
		"enable-health-check-https": "false",
		"api-server-bindaddress":    "localhost:8000",
		"enable-sentry":             "false",
		"enable-gitlab-mock":        "true",
		"enable-jenkins-mock":       "true",
	}
}
