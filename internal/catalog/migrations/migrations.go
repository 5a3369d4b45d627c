package migrations

// gormigrate is a wrapper for gorm's migration functions that adds schema
// versioning and rollback capabilities.

// Migration rules:
//
//  1. IDs are numerical timestamps that must sort ascending.
//     Use YYYYMMDDHHMM w/ 24 hour time for format
//     Example: August 21 2018 at 2:54pm would be 201808211454.
//
//  2. Include models inline with migrations to see the evolution of the
//     object over time. Using our internal type models directly in the first
//     migration would fail in future clean installs.
//
//  3. Migrations must be backwards compatible. There are no new required
//     fields allowed.

import (
	"github.com/go-gormigrate/gormigrate/v2"

	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

var migrations = []*gormigrate.Migration{
	addCatalogTables("202308150000"),
	seedCountriesOfOrigin("202308220000"),
}

func New(dbConfig *db.DatabaseConfig) (*db.Migration, func(), error) {
	return db.NewMigration(dbConfig, &gormigrate.Options{
		TableName:      "migrations",
		IDColumnName:   "id",
		IDColumnSize:   255,
		UseTransaction: false,
	}, migrations)
}
