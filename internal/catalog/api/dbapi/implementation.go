package dbapi

import (
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

type FrameworkEnum string

const (
	FrameworkConnId FrameworkEnum = "connid"
	FrameworkScimV1 FrameworkEnum = "scimv1"
	FrameworkScimV2 FrameworkEnum = "scimv2"
	FrameworkRest   FrameworkEnum = "rest"
)

var AllFrameworks = []FrameworkEnum{
	FrameworkConnId,
	FrameworkScimV1,
	FrameworkScimV2,
	FrameworkRest,
}

// Implementation is one connector codebase for an application, built against
// a given framework and license.
type Implementation struct {
	db.Model
	Name          string        `gorm:"not null;uniqueIndex:idx_implementations_name_application_id"`
	DisplayName   string
	Maintainer    string        `gorm:"index"`
	Framework     FrameworkEnum `gorm:"not null"`
	License       string
	TicketingLink string

	// same-named implementations may exist under different applications
	ApplicationID string `gorm:"not null;index;uniqueIndex:idx_implementations_name_application_id"`

	Versions []ImplementationVersion `gorm:"foreignKey:ImplementationID"`
	Tags     []Tag                   `gorm:"many2many:implementation_tags"`
}

type ImplementationList []*Implementation
