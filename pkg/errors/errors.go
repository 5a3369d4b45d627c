package errors

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang/glog"
)

const (
	ERROR_CODE_PREFIX = "INTEGRATION-CATALOG"

	// HREF for API errors
	ERROR_HREF = "/api/integration_catalog/v1/errors/"

	// Conflict occurs when a database constraint is violated
	ErrorConflict       ServiceErrorCode = 6
	ErrorConflictReason string           = "An entity with the specified unique values already exists"

	// NotFound occurs when a record is not found in the database
	ErrorNotFound       ServiceErrorCode = 7
	ErrorNotFoundReason string           = "Resource not found"

	// Validation occurs when an object fails validation
	ErrorValidation       ServiceErrorCode = 8
	ErrorValidationReason string           = "General validation failure"

	// General occurs when an error fails to match any other error code
	ErrorGeneral       ServiceErrorCode = 9
	ErrorGeneralReason string           = "Unspecified error"

	// NotImplemented occurs when an API REST method is not implemented in a handler
	ErrorNotImplemented       ServiceErrorCode = 10
	ErrorNotImplementedReason string           = "HTTP Method not implemented for this endpoint"

	// MalformedRequest occurs when the request body cannot be read
	ErrorMalformedRequest       ServiceErrorCode = 17
	ErrorMalformedRequestReason string           = "Unable to read request body"

	// Bad Request
	ErrorBadRequest       ServiceErrorCode = 21
	ErrorBadRequestReason string           = "Bad request"

	// Minimum field length validation
	ErrorMinimumFieldLength       ServiceErrorCode = 33
	ErrorMinimumFieldLengthReason string           = "Minimum field length not reached"

	// Maximum field length validation
	ErrorMaximumFieldLength       ServiceErrorCode = 34
	ErrorMaximumFieldLengthReason string           = "Maximum field length has been depassed"

	// A project with the requested name already exists on the source control server
	ErrorRemoteConflict       ServiceErrorCode = 120
	ErrorRemoteConflictReason string           = "A project with this name already exists on the source control server"

	// The source control server rejected our credentials
	ErrorRemoteAuth       ServiceErrorCode = 121
	ErrorRemoteAuthReason string           = "Source control server rejected the configured credentials"

	// The source control server could not be reached
	ErrorRemoteUnavailable       ServiceErrorCode = 122
	ErrorRemoteUnavailableReason string           = "Source control server is unavailable"

	// Committing the submitted files failed after the project was created
	ErrorCommitFailed       ServiceErrorCode = 123
	ErrorCommitFailedReason string           = "Failed to commit connector sources to the created project"

	// The CI server refused or failed to queue the build job
	ErrorDispatchFailed       ServiceErrorCode = 124
	ErrorDispatchFailedReason string           = "Failed to trigger the connector build job"

	// The upstream host serving a connector bundle failed
	ErrorUpstreamDownload       ServiceErrorCode = 125
	ErrorUpstreamDownloadReason string           = "Failed to fetch the connector bundle from its download link"

	// Failure to send an error response (i.e. unable to send error response as the error can't be converted to JSON.)
	ErrorUnableToSendErrorResponse       ServiceErrorCode = 1000
	ErrorUnableToSendErrorResponseReason string           = "An unexpected error happened, please check the log of the service for details"
)

type ServiceErrorCode int

type ServiceErrors []ServiceError

func Find(code ServiceErrorCode) (bool, *ServiceError) {
	for _, err := range Errors() {
		if err.Code == code {
			return true, &err
		}
	}
	return false, nil
}

func Errors() ServiceErrors {
	return ServiceErrors{
		ServiceError{ErrorConflict, ErrorConflictReason, http.StatusConflict},
		ServiceError{ErrorNotFound, ErrorNotFoundReason, http.StatusNotFound},
		ServiceError{ErrorValidation, ErrorValidationReason, http.StatusBadRequest},
		ServiceError{ErrorGeneral, ErrorGeneralReason, http.StatusInternalServerError},
		ServiceError{ErrorNotImplemented, ErrorNotImplementedReason, http.StatusMethodNotAllowed},
		ServiceError{ErrorMalformedRequest, ErrorMalformedRequestReason, http.StatusBadRequest},
		ServiceError{ErrorBadRequest, ErrorBadRequestReason, http.StatusBadRequest},
		ServiceError{ErrorMinimumFieldLength, ErrorMinimumFieldLengthReason, http.StatusBadRequest},
		ServiceError{ErrorMaximumFieldLength, ErrorMaximumFieldLengthReason, http.StatusBadRequest},
		ServiceError{ErrorRemoteConflict, ErrorRemoteConflictReason, http.StatusInternalServerError},
		ServiceError{ErrorRemoteAuth, ErrorRemoteAuthReason, http.StatusInternalServerError},
		ServiceError{ErrorRemoteUnavailable, ErrorRemoteUnavailableReason, http.StatusInternalServerError},
		ServiceError{ErrorCommitFailed, ErrorCommitFailedReason, http.StatusInternalServerError},
		ServiceError{ErrorDispatchFailed, ErrorDispatchFailedReason, http.StatusInternalServerError},
		ServiceError{ErrorUpstreamDownload, ErrorUpstreamDownloadReason, http.StatusBadGateway},
		ServiceError{ErrorUnableToSendErrorResponse, ErrorUnableToSendErrorResponseReason, http.StatusInternalServerError},
	}
}

func ToServiceError(err error) *ServiceError {
	switch convertedErr := err.(type) {
	case *ServiceError:
		return convertedErr
	default:
		return GeneralError(convertedErr.Error())
	}
}

type ServiceError struct {
	// Code is the numeric and distinct ID for the error
	Code ServiceErrorCode
	// Reason is the context-specific reason the error was generated
	Reason string
	// HttpCode is the HttpCode associated with the error when the error is returned as an API response
	HttpCode int
}

// Reason can be a string with format verbs, which will be replaced by the specified values
func New(code ServiceErrorCode, reason string, values ...interface{}) *ServiceError {
	// If the code isn't defined, use the general error code
	var err *ServiceError
	exists, err := Find(code)
	if !exists {
		glog.Errorf("Undefined error code used: %d", code)
		err = &ServiceError{ErrorGeneral, "Unspecified error", http.StatusInternalServerError}
	}

	// If the reason is unspecified, use the default
	if reason != "" {
		err.Reason = fmt.Sprintf(reason, values...)
	}

	return err
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", CodeStr(e.Code), e.Reason)
}

func (e *ServiceError) AsError() error {
	return fmt.Errorf(e.Error())
}

func (e *ServiceError) Is404() bool {
	return e.Code == NotFound("").Code
}

func (e *ServiceError) IsConflict() bool {
	return e.Code == Conflict("").Code
}

func (e *ServiceError) IsRemoteConflict() bool {
	return e.Code == RemoteConflict("").Code
}

func (e *ServiceError) IsRemoteUnavailable() bool {
	return e.Code == RemoteUnavailable("").Code
}

func (e *ServiceError) IsDispatchFailed() bool {
	return e.Code == DispatchFailed("").Code
}

func (e *ServiceError) IsClientErrorClass() bool {
	return e.HttpCode >= http.StatusBadRequest && e.HttpCode < http.StatusInternalServerError
}

func (e *ServiceError) IsServerErrorClass() bool {
	return e.HttpCode >= http.StatusInternalServerError
}

// Error is the wire form of a ServiceError, following the error payload
// conventions of the API.
type Error struct {
	Kind        string `json:"kind"`
	Id          string `json:"id"`
	Href        string `json:"href"`
	Code        string `json:"code"`
	Reason      string `json:"reason"`
	OperationId string `json:"operation_id,omitempty"`
}

func (e *ServiceError) AsOpenapiError(operationID string) Error {
	return Error{
		Kind:        "Error",
		Id:          strconv.Itoa(int(e.Code)),
		Href:        Href(e.Code),
		Code:        CodeStr(e.Code),
		Reason:      e.Reason,
		OperationId: operationID,
	}
}

func CodeStr(code ServiceErrorCode) string {
	return fmt.Sprintf("%s-%d", ERROR_CODE_PREFIX, code)
}

func Href(code ServiceErrorCode) string {
	return fmt.Sprintf("%s%d", ERROR_HREF, code)
}

func NotFound(reason string, values ...interface{}) *ServiceError {
	return New(ErrorNotFound, reason, values...)
}

func GeneralError(reason string, values ...interface{}) *ServiceError {
	return New(ErrorGeneral, reason, values...)
}

func NotImplemented(reason string, values ...interface{}) *ServiceError {
	return New(ErrorNotImplemented, reason, values...)
}

func Conflict(reason string, values ...interface{}) *ServiceError {
	return New(ErrorConflict, reason, values...)
}

func Validation(reason string, values ...interface{}) *ServiceError {
	return New(ErrorValidation, reason, values...)
}

func MalformedRequest(reason string, values ...interface{}) *ServiceError {
	return New(ErrorMalformedRequest, reason, values...)
}

func BadRequest(reason string, values ...interface{}) *ServiceError {
	return New(ErrorBadRequest, reason, values...)
}

func MinimumFieldLengthNotReached(reason string, values ...interface{}) *ServiceError {
	return New(ErrorMinimumFieldLength, reason, values...)
}

func MaximumFieldLengthExceeded(reason string, values ...interface{}) *ServiceError {
	return New(ErrorMaximumFieldLength, reason, values...)
}

func RemoteConflict(reason string, values ...interface{}) *ServiceError {
	return New(ErrorRemoteConflict, reason, values...)
}

func RemoteAuthError(reason string, values ...interface{}) *ServiceError {
	return New(ErrorRemoteAuth, reason, values...)
}

func RemoteUnavailable(reason string, values ...interface{}) *ServiceError {
	return New(ErrorRemoteUnavailable, reason, values...)
}

func CommitError(reason string, values ...interface{}) *ServiceError {
	return New(ErrorCommitFailed, reason, values...)
}

func DispatchFailed(reason string, values ...interface{}) *ServiceError {
	return New(ErrorDispatchFailed, reason, values...)
}

func UpstreamDownloadError(reason string, values ...interface{}) *ServiceError {
	return New(ErrorUpstreamDownload, reason, values...)
}

func UnableToSendErrorResponse() *ServiceError {
	return New(ErrorUnableToSendErrorResponse, ErrorUnableToSendErrorResponseReason)
}
