package services

import (
	"net/url"
	"strconv"

	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

const (
	// MaxListSize caps the page size a client may request
	MaxListSize = 500
)

// ListArguments are arguments relevant for listing objects.
// This struct is common to all service List funcs in this package
type ListArguments struct {
	Page     int
	Size     int
	Preloads []string
	Search   string
	OrderBy  []string
}

// NewListArguments - Create ListArguments from url query parameters with sane defaults.
// Pages are zero based.
func NewListArguments(params url.Values) *ListArguments {
	listArgs := &ListArguments{
		Page: 0,
		Size: 100,
	}
	if v := params.Get("page"); v != "" {
		listArgs.Page, _ = strconv.Atoi(v)
	}
	if v := params.Get("size"); v != "" {
		listArgs.Size, _ = strconv.Atoi(v)
	}
	if listArgs.Size > MaxListSize || listArgs.Size < 0 {
		listArgs.Size = MaxListSize
	}
	return listArgs
}

// Validate validates a ListArguments
func (la *ListArguments) Validate() error {
	if la.Page < 0 {
		return errors.MalformedRequest("page must not be negative")
	}
	if la.Size < 1 {
		return errors.MalformedRequest("size must be positive")
	}
	return nil
}
