package config

import (
	"time"

	"github.com/spf13/pflag"
)

type CatalogConfig struct {
	// timeout for fetching a version's artifact from its download link
	DownloadTimeout time.Duration `json:"download_timeout"`
	// how long the tag and country facet lists may be served from cache
	FacetCacheTTL  time.Duration `json:"facet_cache_ttl"`
	MaxUploadFiles int           `json:"max_upload_files"`
}

func NewCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		DownloadTimeout: 30 * time.Second,
		FacetCacheTTL:   5 * time.Minute,
		MaxUploadFiles:  100,
	}
}

func (c *CatalogConfig) AddFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&c.DownloadTimeout, "download-timeout", c.DownloadTimeout, "Timeout for fetching connector artifacts from their download links")
	fs.DurationVar(&c.FacetCacheTTL, "facet-cache-ttl", c.FacetCacheTTL, "How long tag and country lists are served from cache")
	fs.IntVar(&c.MaxUploadFiles, "max-upload-files", c.MaxUploadFiles, "Maximum number of files accepted in one connector upload")
}

func (c *CatalogConfig) ReadFiles() error {
	return nil
}
