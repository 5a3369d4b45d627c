package public

import (
	"time"
)

type ConnectorVersion struct {
	Id               string     `json:"id"`
	Kind             string     `json:"kind"`
	Href             string     `json:"href"`
	Description      string     `json:"description,omitempty"`
	ConnectorVersion string     `json:"connector_version"`
	BundleName       string     `json:"bundle_name,omitempty"`
	BrowseLink       string     `json:"browse_link,omitempty"`
	CheckoutLink     string     `json:"checkout_link,omitempty"`
	DownloadLink     string     `json:"download_link,omitempty"`
	SystemVersion    string     `json:"system_version,omitempty"`
	Author           string     `json:"author,omitempty"`
	ReleasedDate     *time.Time `json:"released_date,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	Phase            string     `json:"phase"`
	BuildFramework   string     `json:"build_framework"`
	Capabilities     []string   `json:"capabilities,omitempty"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	ImplementationId string     `json:"implementation_id"`
	Downloads        int64      `json:"downloads"`
}

type ConnectorVersionList struct {
	Kind  string             `json:"kind"`
	Page  int32              `json:"page"`
	Size  int32              `json:"size"`
	Total int32              `json:"total"`
	Items []ConnectorVersion `json:"items"`
}
