package gitlab

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/Evolveum/integration-catalog-sub000/pkg/shared"
)

type Config struct {
	BaseURL       string        `json:"base_url"`
	NamespaceID   int64         `json:"namespace_id"`
	DefaultBranch string        `json:"default_branch"`
	Visibility    string        `json:"visibility"`
	Timeout       time.Duration `json:"timeout"`
	EnableMock    bool          `json:"enable_mock"`

	Token     string `json:"-"`
	TokenFile string `json:"token_file"`
}

func NewConfig() *Config {
	return &Config{
		BaseURL:       "https://gitlab.com",
		NamespaceID:   0,
		DefaultBranch: "main",
		Visibility:    "private",
		Timeout:       30 * time.Second,
		EnableMock:    false,
		TokenFile:     "secrets/gitlab.token",
	}
}

func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.BaseURL, "gitlab-base-url", c.BaseURL, "Base URL of the GitLab instance hosting connector projects")
	fs.Int64Var(&c.NamespaceID, "gitlab-namespace-id", c.NamespaceID, "GitLab namespace (group) id the connector projects are created under")
	fs.StringVar(&c.DefaultBranch, "gitlab-default-branch", c.DefaultBranch, "Branch connector sources are committed to")
	fs.StringVar(&c.Visibility, "gitlab-visibility", c.Visibility, "Visibility of created connector projects (private | internal | public)")
	fs.DurationVar(&c.Timeout, "gitlab-timeout", c.Timeout, "Timeout for all requests made to GitLab")
	fs.BoolVar(&c.EnableMock, "enable-gitlab-mock", c.EnableMock, "Skip GitLab calls and fabricate project data, for development")
	fs.StringVar(&c.TokenFile, "gitlab-token-file", c.TokenFile, "File containing the GitLab personal access token")
}

func (c *Config) ReadFiles() error {
	if c.EnableMock {
		return nil
	}
	return shared.ReadFileValueString(c.TokenFile, &c.Token)
}
