package presenters

import (
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/pkg/api"
)

func PresentApplication(application *dbapi.Application) public.Application {
	tags := make([]string, 0, len(application.Tags))
	for _, tag := range application.Tags {
		tags = append(tags, tag.Name)
	}
	countries := make([]string, 0, len(application.Countries))
	for _, country := range application.Countries {
		countries = append(countries, country.Code)
	}
	implementations := make([]public.Implementation, 0, len(application.Implementations))
	for i := range application.Implementations {
		implementations = append(implementations, PresentImplementation(&application.Implementations[i]))
	}

	return public.Application{
		Id:              application.ID,
		Kind:            KindApplication,
		Href:            Href("applications", application.ID),
		Name:            application.Name,
		DisplayName:     application.DisplayName,
		Description:     application.Description,
		Phase:           string(application.Phase),
		Tags:            tags,
		Countries:       countries,
		CreatedAt:       application.CreatedAt,
		ModifiedAt:      application.UpdatedAt,
		Implementations: implementations,
	}
}

func PresentImplementation(implementation *dbapi.Implementation) public.Implementation {
	versions := make([]public.ConnectorVersion, 0, len(implementation.Versions))
	for i := range implementation.Versions {
		versions = append(versions, PresentConnectorVersion(&implementation.Versions[i], 0))
	}

	return public.Implementation{
		Id:            implementation.ID,
		Kind:          KindImplementation,
		Href:          Href("implementations", implementation.ID),
		Name:          implementation.Name,
		DisplayName:   implementation.DisplayName,
		Maintainer:    implementation.Maintainer,
		Framework:     string(implementation.Framework),
		License:       implementation.License,
		TicketingLink: implementation.TicketingLink,
		ApplicationId: implementation.ApplicationID,
		Versions:      versions,
	}
}

func PresentApplicationList(applications dbapi.ApplicationList, paging *api.PagingMeta) public.ApplicationList {
	items := make([]public.Application, 0, len(applications))
	for _, application := range applications {
		items = append(items, PresentApplication(application))
	}
	return public.ApplicationList{
		Kind:  KindApplicationList,
		Page:  int32(paging.Page),
		Size:  int32(len(items)),
		Total: int32(paging.Total),
		Items: items,
	}
}
