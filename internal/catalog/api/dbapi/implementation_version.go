package dbapi

import (
	"time"

	"github.com/lib/pq"

	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

type VersionPhaseEnum string

const (
	// VersionPhaseInPublishProcess - The version is persisted and its build is in flight
	VersionPhaseInPublishProcess VersionPhaseEnum = "in_publish_process"
	// VersionPhaseActive - The build succeeded and the artifact is downloadable
	VersionPhaseActive VersionPhaseEnum = "active"
	// VersionPhaseDeprecated - Curation state, still downloadable
	VersionPhaseDeprecated VersionPhaseEnum = "deprecated"
	// VersionPhaseArchived - Curation state, still downloadable
	VersionPhaseArchived VersionPhaseEnum = "archived"
	// VersionPhaseWithError - The build failed, ErrorMessage carries the reason
	VersionPhaseWithError VersionPhaseEnum = "with_error"
)

var AllVersionPhases = []VersionPhaseEnum{
	VersionPhaseInPublishProcess,
	VersionPhaseActive,
	VersionPhaseDeprecated,
	VersionPhaseArchived,
	VersionPhaseWithError,
}

type BuildFrameworkEnum string

const (
	BuildFrameworkMaven  BuildFrameworkEnum = "maven"
	BuildFrameworkGradle BuildFrameworkEnum = "gradle"
)

var AllBuildFrameworks = []BuildFrameworkEnum{
	BuildFrameworkMaven,
	BuildFrameworkGradle,
}

const (
	CapabilityRead   = "READ"
	CapabilityCreate = "CREATE"
	CapabilityModify = "MODIFY"
	CapabilityDelete = "DELETE"
)

var AllCapabilities = []string{
	CapabilityRead,
	CapabilityCreate,
	CapabilityModify,
	CapabilityDelete,
}

// ImplementationVersion is one published build of an implementation. Its id
// is the correlation token between the build dispatch and the CI callback.
type ImplementationVersion struct {
	db.Model
	Description      string
	ConnectorVersion string `gorm:"not null;index"`
	BundleName       string
	BrowseLink       string
	CheckoutLink     string
	DownloadLink     string
	SystemVersion    string
	Author           string
	ReleasedDate     *time.Time
	PublishedAt      *time.Time

	Phase          VersionPhaseEnum   `gorm:"not null;index"`
	BuildFramework BuildFrameworkEnum `gorm:"not null"`
	Capabilities   pq.StringArray     `gorm:"type:text[]"`

	// populated only in the with_error phase
	ErrorMessage string

	ImplementationID string `gorm:"not null;index"`

	DownloadEvents []DownloadEvent `gorm:"foreignKey:VersionID"`
}

type ImplementationVersionList []*ImplementationVersion
