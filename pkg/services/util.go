package services

import (
	goerrors "errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

// Field names suspected to contain personally identifiable information
var piiFields = []string{
	"username",
	"first_name",
	"last_name",
	"email",
	"address",
}

func HandleGetError(resourceType, field string, value interface{}, err error) *errors.ServiceError {
	// Sanitize errors of any personally identifiable information
	for _, f := range piiFields {
		if field == f {
			value = "<redacted>"
			break
		}
	}
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound("%s with %s='%v' not found", resourceType, field, value)
	}
	return errors.GeneralError("Unable to find %s with %s='%v': %s", resourceType, field, value, err)
}

func HandleCreateError(resourceType string, err error) *errors.ServiceError {
	if strings.Contains(err.Error(), "violates unique constraint") {
		return errors.Conflict("This %s already exists", resourceType)
	}
	return errors.GeneralError("Unable to create %s: %s", resourceType, err.Error())
}

func HandleUpdateError(resourceType string, err error) *errors.ServiceError {
	if strings.Contains(err.Error(), "violates unique constraint") {
		return errors.Conflict("Changes to %s conflict with existing records", resourceType)
	}
	return errors.GeneralError("Unable to update %s: %s", resourceType, err.Error())
}

func HandleDeleteError(resourceType string, field string, value interface{}, err error) *errors.ServiceError {
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound("%s with %s='%v' not found", resourceType, field, value)
	}
	return errors.GeneralError("Unable to delete %s with %s='%v': %s", resourceType, field, value, err)
}

func TruncateString(str string, num int) string {
	truncatedString := str
	if len(str) > num {
		truncatedString = str[0:num]
	}
	return truncatedString
}
