package public

// FileEntry is one file of the submitted connector source set
type FileEntry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type ApplicationUpload struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name,omitempty"`
	Description string   `json:"description,omitempty"`
	Logo        string   `json:"logo,omitempty"` // base64
	Tags        []string `json:"tags,omitempty"`
	Countries   []string `json:"countries_of_origin,omitempty"`
}

type ImplementationUpload struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name,omitempty"`
	Maintainer    string `json:"maintainer"`
	Framework     string `json:"framework"`
	License       string `json:"license,omitempty"`
	TicketingLink string `json:"ticketing_link,omitempty"`
}

type VersionUpload struct {
	Description      string   `json:"description,omitempty"`
	ConnectorVersion string   `json:"connector_version"`
	SystemVersion    string   `json:"system_version,omitempty"`
	Author           string   `json:"author,omitempty"`
	ReleasedDate     string   `json:"released_date,omitempty"` // RFC 3339 date
	BuildFramework   string   `json:"build_framework"`
	Capabilities     []string `json:"capabilities,omitempty"`
}

// UploadRequest initiates a publish: the application, implementation and
// version records plus the connector source files to build.
type UploadRequest struct {
	Application    ApplicationUpload    `json:"application"`
	Implementation ImplementationUpload `json:"implementation"`
	Version        VersionUpload        `json:"version"`
	Files          []FileEntry          `json:"files"`
}

// UploadAccepted acknowledges a dispatched build. The version id is the
// correlation token the CI callback will echo back.
type UploadAccepted struct {
	Kind             string `json:"kind"`
	ApplicationID    string `json:"application_id"`
	ImplementationID string `json:"implementation_id"`
	VersionID        string `json:"version_id"`
	DispatchID       string `json:"dispatch_id"`
}

// ContinueUploadRequest is the CI success callback payload
type ContinueUploadRequest struct {
	BundleName       string `json:"bundle_name"`
	ConnectorVersion string `json:"connector_version"`
	PublishTime      int64  `json:"publish_time"` // epoch milliseconds
	DownloadLink     string `json:"download_link"`
}

// FailUploadRequest is the CI failure callback payload
type FailUploadRequest struct {
	ErrorMessage string `json:"error_message"`
}
