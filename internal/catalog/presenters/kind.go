package presenters

import (
	"fmt"
)

const (
	KindApplication          = "Application"
	KindApplicationList      = "ApplicationList"
	KindImplementation       = "Implementation"
	KindConnectorVersion     = "ConnectorVersion"
	KindConnectorVersionList = "ConnectorVersionList"
	KindAppRequest           = "AppRequest"
	KindAppRequestList       = "AppRequestList"
	KindTagList              = "TagList"
	KindCountryList          = "CountryOfOriginList"
	KindUploadAccepted       = "UploadAccepted"

	BasePath = "/api/integration_catalog/v1"
)

func Href(collection string, id string) string {
	return fmt.Sprintf("%s/%s/%s", BasePath, collection, id)
}
