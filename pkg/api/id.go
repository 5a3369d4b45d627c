package api

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a new unique identifier for a catalog entity.
// Dashes are stripped so the ID is safe to use in URLs and job parameters.
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
