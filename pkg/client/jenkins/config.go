package jenkins

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/Evolveum/integration-catalog-sub000/pkg/shared"
)

type Config struct {
	BaseURL    string        `json:"base_url"`
	Job        string        `json:"job"`
	Username   string        `json:"username"`
	Timeout    time.Duration `json:"timeout"`
	EnableMock bool          `json:"enable_mock"`

	APIToken     string `json:"-"`
	APITokenFile string `json:"api_token_file"`
}

func NewConfig() *Config {
	return &Config{
		BaseURL:      "https://jenkins.evolveum.com",
		Job:          "connector-build",
		Username:     "catalog",
		Timeout:      30 * time.Second,
		EnableMock:   false,
		APITokenFile: "secrets/jenkins.token",
	}
}

func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.BaseURL, "jenkins-base-url", c.BaseURL, "Base URL of the Jenkins instance building connectors")
	fs.StringVar(&c.Job, "jenkins-job", c.Job, "Name of the parameterized Jenkins job that builds connectors")
	fs.StringVar(&c.Username, "jenkins-username", c.Username, "Username the build jobs are triggered as")
	fs.DurationVar(&c.Timeout, "jenkins-timeout", c.Timeout, "Timeout for all requests made to Jenkins")
	fs.BoolVar(&c.EnableMock, "enable-jenkins-mock", c.EnableMock, "Skip Jenkins calls and report builds as queued, for development")
	fs.StringVar(&c.APITokenFile, "jenkins-api-token-file", c.APITokenFile, "File containing the Jenkins API token")
}

func (c *Config) ReadFiles() error {
	if c.EnableMock {
		return nil
	}
	return shared.ReadFileValueString(c.APITokenFile, &c.APIToken)
}
