package presenters

import (
	"encoding/base64"
	"time"

	"github.com/lib/pq"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/services"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

const releasedDateLayout = "2006-01-02"

// ConvertUploadRequest maps an upload payload onto the entity triple and the
// file set handed to the dispatcher. Phases and ids are left for the publish
// service to assign.
func ConvertUploadRequest(request public.UploadRequest) (*dbapi.Application, *dbapi.Implementation,
	*dbapi.ImplementationVersion, []services.PublishFile, *errors.ServiceError) {

	application := &dbapi.Application{
		Name:        request.Application.Name,
		DisplayName: request.Application.DisplayName,
		Description: request.Application.Description,
	}
	if request.Application.Logo != "" {
		logo, err := base64.StdEncoding.DecodeString(request.Application.Logo)
		if err != nil {
			return nil, nil, nil, nil, errors.Validation("application logo is not valid base64: %s", err)
		}
		application.Logo = logo
	}
	for _, name := range request.Application.Tags {
		application.Tags = append(application.Tags, dbapi.Tag{Name: name})
	}
	for _, code := range request.Application.Countries {
		application.Countries = append(application.Countries, dbapi.CountryOfOrigin{Code: code})
	}

	implementation := &dbapi.Implementation{
		Name:          request.Implementation.Name,
		DisplayName:   request.Implementation.DisplayName,
		Maintainer:    request.Implementation.Maintainer,
		Framework:     dbapi.FrameworkEnum(request.Implementation.Framework),
		License:       request.Implementation.License,
		TicketingLink: request.Implementation.TicketingLink,
	}

	version := &dbapi.ImplementationVersion{
		Description:      request.Version.Description,
		ConnectorVersion: request.Version.ConnectorVersion,
		SystemVersion:    request.Version.SystemVersion,
		Author:           request.Version.Author,
		BuildFramework:   dbapi.BuildFrameworkEnum(request.Version.BuildFramework),
		Capabilities:     pq.StringArray(request.Version.Capabilities),
	}
	if request.Version.ReleasedDate != "" {
		releasedDate, err := time.Parse(releasedDateLayout, request.Version.ReleasedDate)
		if err != nil {
			return nil, nil, nil, nil, errors.Validation("released date must use the %s layout: %s", releasedDateLayout, err)
		}
		version.ReleasedDate = &releasedDate
	}

	files := make([]services.PublishFile, 0, len(request.Files))
	for _, file := range request.Files {
		files = append(files, services.PublishFile{
			Path:    file.Path,
			Content: file.Content,
		})
	}

	return application, implementation, version, files, nil
}

func PresentUploadAccepted(result *services.UploadResult) public.UploadAccepted {
	return public.UploadAccepted{
		Kind:             KindUploadAccepted,
		ApplicationID:    result.ApplicationID,
		ImplementationID: result.ImplementationID,
		VersionID:        result.VersionID,
		DispatchID:       result.DispatchID,
	}
}
