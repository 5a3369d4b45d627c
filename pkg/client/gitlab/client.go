package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

// Project is the subset of the GitLab project resource the catalog cares about
type Project struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Path              string `json:"path"`
	PathWithNamespace string `json:"path_with_namespace"`
	WebURL            string `json:"web_url"`
	HTTPURLToRepo     string `json:"http_url_to_repo"`
	DefaultBranch     string `json:"default_branch"`
}

// CommitAction is one file operation of a commit, mirroring the GitLab
// commits API action payload.
type CommitAction struct {
	Action   string `json:"action"`
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
	Encoding string `json:"encoding,omitempty"`
}

type commitRequest struct {
	Branch        string         `json:"branch"`
	StartBranch   string         `json:"start_branch,omitempty"`
	CommitMessage string         `json:"commit_message"`
	Actions       []CommitAction `json:"actions"`
}

type errorResponse struct {
	Message interface{} `json:"message"`
	Error   string      `json:"error"`
}

func (e *errorResponse) reason() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != nil {
		return fmt.Sprintf("%v", e.Message)
	}
	return ""
}

// Client talks to the GitLab REST API v4. All project management of the
// publish pipeline goes through it.
type Client struct {
	config *Config
	resty  *resty.Client
}

func NewClient(config *Config) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(config.BaseURL, "/") + "/api/v4").
		SetHeader("Private-Token", config.Token).
		SetHeader("Content-Type", "application/json").
		SetTimeout(config.Timeout)

	return &Client{
		config: config,
		resty:  rc,
	}
}

// CreateProject creates an empty project for a connector version under the
// configured namespace. A name collision on the GitLab side is reported as a
// remote conflict so callers can surface it without retrying.
func (c *Client) CreateProject(ctx context.Context, name string) (*Project, *errors.ServiceError) {
	body := map[string]interface{}{
		"name":                   name,
		"visibility":             c.config.Visibility,
		"initialize_with_readme": false,
	}
	if c.config.NamespaceID != 0 {
		body["namespace_id"] = c.config.NamespaceID
	}

	result := &Project{}
	errBody := &errorResponse{}
	resp, err := c.resty.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(errBody).
		Post("/projects")
	if err != nil {
		return nil, errors.RemoteUnavailable("Unable to reach source control server: %s", err)
	}

	switch {
	case resp.StatusCode() == http.StatusCreated:
		if result.DefaultBranch == "" {
			result.DefaultBranch = c.config.DefaultBranch
		}
		return result, nil
	case isNameTaken(resp.StatusCode(), errBody):
		return nil, errors.RemoteConflict("Project %q already exists on the source control server", name)
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return nil, errors.RemoteAuthError("Source control server rejected the configured credentials: %s", errBody.reason())
	case resp.StatusCode() >= http.StatusInternalServerError:
		return nil, errors.RemoteUnavailable("Source control server failed with status %d: %s", resp.StatusCode(), errBody.reason())
	default:
		return nil, errors.GeneralError("Unable to create project %q: status %d: %s", name, resp.StatusCode(), errBody.reason())
	}
}

// CommitFiles commits the given file actions to the project in a single
// atomic commit. Either all files land or none do.
func (c *Client) CommitFiles(ctx context.Context, projectID int64, message string, actions []CommitAction) *errors.ServiceError {
	body := commitRequest{
		Branch:        c.config.DefaultBranch,
		CommitMessage: message,
		Actions:       actions,
	}

	errBody := &errorResponse{}
	resp, err := c.resty.R().
		SetContext(ctx).
		SetBody(body).
		SetError(errBody).
		Post(fmt.Sprintf("/projects/%d/repository/commits", projectID))
	if err != nil {
		return errors.RemoteUnavailable("Unable to reach source control server: %s", err)
	}

	switch {
	case resp.StatusCode() == http.StatusCreated:
		return nil
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return errors.RemoteAuthError("Source control server rejected the configured credentials: %s", errBody.reason())
	case resp.StatusCode() >= http.StatusInternalServerError:
		return errors.RemoteUnavailable("Source control server failed with status %d: %s", resp.StatusCode(), errBody.reason())
	default:
		return errors.CommitError("Unable to commit %d file(s) to project %d: status %d: %s", len(actions), projectID, resp.StatusCode(), errBody.reason())
	}
}

// GetProject fetches a project by its numeric id
func (c *Client) GetProject(ctx context.Context, projectID int64) (*Project, *errors.ServiceError) {
	result := &Project{}
	errBody := &errorResponse{}
	resp, err := c.resty.R().
		SetContext(ctx).
		SetResult(result).
		SetError(errBody).
		Get(fmt.Sprintf("/projects/%d", projectID))
	if err != nil {
		return nil, errors.RemoteUnavailable("Unable to reach source control server: %s", err)
	}

	switch {
	case resp.StatusCode() == http.StatusOK:
		return result, nil
	case resp.StatusCode() == http.StatusNotFound:
		return nil, errors.NotFound("Project with id %d not found on the source control server", projectID)
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return nil, errors.RemoteAuthError("Source control server rejected the configured credentials: %s", errBody.reason())
	default:
		return nil, errors.RemoteUnavailable("Source control server failed with status %d: %s", resp.StatusCode(), errBody.reason())
	}
}

// GitLab reports a duplicate project name either as a 409 or as a 400
// validation error with a "has already been taken" message.
func isNameTaken(status int, errBody *errorResponse) bool {
	if status == http.StatusConflict {
		return true
	}
	return status == http.StatusBadRequest && strings.Contains(errBody.reason(), "has already been taken")
}
