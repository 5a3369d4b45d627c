package migrations

// Migrations should NEVER use types from other packages. Types can change
// and then migrations run on a _new_ database will fail or behave unexpectedly.
// Instead of importing types, always re-create the type in the migration, as
// is done here, even though the same type is defined in internal/catalog/api/dbapi

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/lib/pq"

	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

func addCatalogTables(migrationId string) *gormigrate.Migration {

	type Tag struct {
		db.Model
		Name string `gorm:"not null;uniqueIndex"`
	}

	type CountryOfOrigin struct {
		db.Model
		Code string `gorm:"not null;uniqueIndex"`
		Name string `gorm:"not null"`
	}

	type Application struct {
		db.Model
		Name        string `gorm:"not null;index"`
		DisplayName string
		Description string
		Logo        []byte `gorm:"type:bytea"`
		Phase       string `gorm:"not null;index"`

		Tags      []Tag             `gorm:"many2many:application_tags"`
		Countries []CountryOfOrigin `gorm:"many2many:application_countries"`
	}

	type Implementation struct {
		db.Model
		Name          string `gorm:"not null;uniqueIndex:idx_implementations_name_application_id"`
		DisplayName   string
		Maintainer    string `gorm:"index"`
		Framework     string `gorm:"not null"`
		License       string
		TicketingLink string

		ApplicationID string `gorm:"not null;index;uniqueIndex:idx_implementations_name_application_id"`

		Tags []Tag `gorm:"many2many:implementation_tags"`
	}

	type ImplementationVersion struct {
		db.Model
		Description      string
		ConnectorVersion string `gorm:"not null;index"`
		BundleName       string
		BrowseLink       string
		CheckoutLink     string
		DownloadLink     string
		SystemVersion    string
		Author           string
		ReleasedDate     *time.Time
		PublishedAt      *time.Time

		Phase          string         `gorm:"not null;index"`
		BuildFramework string         `gorm:"not null"`
		Capabilities   pq.StringArray `gorm:"type:text[]"`

		ErrorMessage string

		ImplementationID string `gorm:"not null;index"`
	}

	type DownloadEvent struct {
		db.Model
		VersionID  string `gorm:"not null;index"`
		RemoteAddr string
		UserAgent  string
	}

	type AppRequest struct {
		db.Model
		Name        string `gorm:"not null;uniqueIndex"`
		Description string
		Requester   string `gorm:"not null"`
	}

	type Vote struct {
		db.Model
		RequestID string `gorm:"not null;uniqueIndex:idx_votes_request_id_voter"`
		Voter     string `gorm:"not null;uniqueIndex:idx_votes_request_id_voter"`
	}

	return db.CreateMigrationFromActions(migrationId,
		db.CreateTableAction(&Tag{}),
		db.CreateTableAction(&CountryOfOrigin{}),
		db.CreateTableAction(&Application{}),
		db.CreateTableAction(&Implementation{}),
		db.CreateTableAction(&ImplementationVersion{}),
		db.CreateTableAction(&DownloadEvent{}),
		db.CreateTableAction(&AppRequest{}),
		db.CreateTableAction(&Vote{}),

		db.ExecAction(
			"ALTER TABLE implementations DROP CONSTRAINT IF EXISTS fk_implementations_application_id",
			""),
		db.ExecAction(
			"ALTER TABLE implementations ADD CONSTRAINT fk_implementations_application_id "+
				"FOREIGN KEY (application_id) REFERENCES applications(id)",
			"ALTER TABLE implementations DROP CONSTRAINT IF EXISTS fk_implementations_application_id"),
		db.ExecAction(
			"ALTER TABLE implementation_versions DROP CONSTRAINT IF EXISTS fk_implementation_versions_implementation_id",
			""),
		db.ExecAction(
			"ALTER TABLE implementation_versions ADD CONSTRAINT fk_implementation_versions_implementation_id "+
				"FOREIGN KEY (implementation_id) REFERENCES implementations(id)",
			"ALTER TABLE implementation_versions DROP CONSTRAINT IF EXISTS fk_implementation_versions_implementation_id"),
		db.ExecAction(
			"ALTER TABLE download_events DROP CONSTRAINT IF EXISTS fk_download_events_version_id",
			""),
		db.ExecAction(
			"ALTER TABLE download_events ADD CONSTRAINT fk_download_events_version_id "+
				"FOREIGN KEY (version_id) REFERENCES implementation_versions(id)",
			"ALTER TABLE download_events DROP CONSTRAINT IF EXISTS fk_download_events_version_id"),
		db.ExecAction(
			"ALTER TABLE votes DROP CONSTRAINT IF EXISTS fk_votes_request_id",
			""),
		db.ExecAction(
			"ALTER TABLE votes ADD CONSTRAINT fk_votes_request_id "+
				"FOREIGN KEY (request_id) REFERENCES app_requests(id)",
			"ALTER TABLE votes DROP CONSTRAINT IF EXISTS fk_votes_request_id"),
	)
}
