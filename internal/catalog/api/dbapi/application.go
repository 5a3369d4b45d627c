package dbapi

import (
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

type ApplicationPhaseEnum string

const (
	// ApplicationPhaseRequested - Application exists only as a user request, nothing published yet
	ApplicationPhaseRequested ApplicationPhaseEnum = "requested"
	// ApplicationPhaseInPublishProcess - A connector build for this application is in flight
	ApplicationPhaseInPublishProcess ApplicationPhaseEnum = "in_publish_process"
	// ApplicationPhaseActive - At least one connector version built successfully
	ApplicationPhaseActive ApplicationPhaseEnum = "active"
	// ApplicationPhaseWithError - The only publish path for this application failed
	ApplicationPhaseWithError ApplicationPhaseEnum = "with_error"
)

var AllApplicationPhases = []ApplicationPhaseEnum{
	ApplicationPhaseRequested,
	ApplicationPhaseInPublishProcess,
	ApplicationPhaseActive,
	ApplicationPhaseWithError,
}

// Application is a cataloged target system, e.g. "Slack". It owns its
// implementations; an implementation is never re-parented.
type Application struct {
	db.Model
	Name        string `gorm:"not null;index"`
	DisplayName string
	Description string
	Logo        []byte               `gorm:"type:bytea"`
	Phase       ApplicationPhaseEnum `gorm:"not null;index"`

	Tags      []Tag             `gorm:"many2many:application_tags"`
	Countries []CountryOfOrigin `gorm:"many2many:application_countries"`

	Implementations []Implementation `gorm:"foreignKey:ApplicationID"`
}

type ApplicationList []*Application
