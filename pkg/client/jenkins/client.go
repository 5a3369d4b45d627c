package jenkins

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

// BuildParameters carries the parameters handed to the connector build job.
// The version id doubles as the correlation token the job sends back on its
// completion callback.
type BuildParameters struct {
	RepositoryURL string
	Branch        string
	VersionID     string
	Framework     string
}

func (p BuildParameters) formData() map[string]string {
	return map[string]string{
		"REPOSITORY_URL": p.RepositoryURL,
		"BRANCH":         p.Branch,
		"VERSION_ID":     p.VersionID,
		"FRAMEWORK":      p.Framework,
	}
}

// Client triggers parameterized builds on a Jenkins instance
type Client struct {
	config *Config
	resty  *resty.Client
}

func NewClient(config *Config) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(config.BaseURL, "/")).
		SetBasicAuth(config.Username, config.APIToken).
		SetTimeout(config.Timeout)

	return &Client{
		config: config,
		resty:  rc,
	}
}

// TriggerBuild queues a run of the connector build job and returns the queue
// item URL Jenkins reported. Any response other than 201 means the job was
// not queued.
func (c *Client) TriggerBuild(ctx context.Context, params BuildParameters) (string, *errors.ServiceError) {
	resp, err := c.resty.R().
		SetContext(ctx).
		SetFormData(params.formData()).
		Post(fmt.Sprintf("/job/%s/buildWithParameters", c.config.Job))
	if err != nil {
		return "", errors.DispatchFailed("Unable to reach CI server: %s", err)
	}

	switch {
	case resp.StatusCode() == http.StatusCreated:
		return resp.Header().Get("Location"), nil
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return "", errors.DispatchFailed("CI server rejected the configured credentials: status %d", resp.StatusCode())
	case resp.StatusCode() == http.StatusNotFound:
		return "", errors.DispatchFailed("CI job %q does not exist", c.config.Job)
	default:
		return "", errors.DispatchFailed("CI server refused to queue the build: status %d", resp.StatusCode())
	}
}
