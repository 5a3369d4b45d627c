package presenters

import (
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/pkg/api"
)

func PresentConnectorVersion(version *dbapi.ImplementationVersion, downloads int64) public.ConnectorVersion {
	return public.ConnectorVersion{
		Id:               version.ID,
		Kind:             KindConnectorVersion,
		Href:             Href("connector-versions", version.ID),
		Description:      version.Description,
		ConnectorVersion: version.ConnectorVersion,
		BundleName:       version.BundleName,
		BrowseLink:       version.BrowseLink,
		CheckoutLink:     version.CheckoutLink,
		DownloadLink:     version.DownloadLink,
		SystemVersion:    version.SystemVersion,
		Author:           version.Author,
		ReleasedDate:     version.ReleasedDate,
		PublishedAt:      version.PublishedAt,
		Phase:            string(version.Phase),
		BuildFramework:   string(version.BuildFramework),
		Capabilities:     version.Capabilities,
		ErrorMessage:     version.ErrorMessage,
		ImplementationId: version.ImplementationID,
		Downloads:        downloads,
	}
}

func PresentConnectorVersionList(versions dbapi.ImplementationVersionList, paging *api.PagingMeta) public.ConnectorVersionList {
	items := make([]public.ConnectorVersion, 0, len(versions))
	for _, version := range versions {
		items = append(items, PresentConnectorVersion(version, 0))
	}
	return public.ConnectorVersionList{
		Kind:  KindConnectorVersionList,
		Page:  int32(paging.Page),
		Size:  int32(len(items)),
		Total: int32(paging.Total),
		Items: items,
	}
}
