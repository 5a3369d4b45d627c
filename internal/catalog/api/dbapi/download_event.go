package dbapi

import (
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

// DownloadEvent records one download of a version's artifact. The per-version
// download count is derived from these rows, never stored.
type DownloadEvent struct {
	db.Model
	VersionID  string `gorm:"not null;index"`
	RemoteAddr string
	UserAgent  string
}

type DownloadEventList []*DownloadEvent
