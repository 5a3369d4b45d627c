package sentry

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/Evolveum/integration-catalog-sub000/pkg/shared"
)

type Config struct {
	Enabled bool          `json:"enabled"`
	Key     string        `json:"key"`
	URL     string        `json:"url"`
	Project string        `json:"project"`
	Debug   bool          `json:"debug"`
	Timeout time.Duration `json:"timeout"`

	KeyFile string `json:"key_file"`
}

func NewConfig() *Config {
	return &Config{
		Enabled: false,
		Key:     "",
		URL:     "sentry.evolveum.com",
		Project: "1",
		Debug:   false,
		Timeout: 5 * time.Second,
		KeyFile: "secrets/sentry.key",
	}
}

func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.Enabled, "enable-sentry", c.Enabled, "Enable sentry error monitoring")
	fs.StringVar(&c.KeyFile, "sentry-key-file", c.KeyFile, "File containing Sentry key")
	fs.StringVar(&c.URL, "sentry-url", c.URL, "Base URL of Sentry instance")
	fs.StringVar(&c.Project, "sentry-project", c.Project, "Sentry project to report to")
	fs.BoolVar(&c.Debug, "enable-sentry-debug", c.Debug, "Enable sentry debug mode")
	fs.DurationVar(&c.Timeout, "sentry-timeout", c.Timeout, "Timeout for all requests made to Sentry")
}

func (c *Config) ReadFiles() error {
	if !c.Enabled {
		return nil
	}
	return shared.ReadFileValueString(c.KeyFile, &c.Key)
}
