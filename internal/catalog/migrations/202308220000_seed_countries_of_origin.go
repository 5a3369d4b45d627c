package migrations

import (
	"fmt"
	"strings"

	"github.com/go-gormigrate/gormigrate/v2"

	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

// the countries connector maintainers have published from so far, the rest
// are created on demand during upload
var seedCountries = map[string]string{
	"CZ": "Czechia",
	"DE": "Germany",
	"FR": "France",
	"GB": "United Kingdom",
	"SK": "Slovakia",
	"US": "United States",
}

func seedCountriesOfOrigin(migrationId string) *gormigrate.Migration {
	var actions []db.MigrationAction
	for code, name := range seedCountries {
		actions = append(actions, db.ExecAction(
			fmt.Sprintf("INSERT INTO country_of_origins (id, code, name, created_at, updated_at) "+
				"VALUES ('country-%s', '%s', '%s', now(), now()) ON CONFLICT (code) DO NOTHING",
				strings.ToLower(code), code, strings.ReplaceAll(name, "'", "''")),
			fmt.Sprintf("DELETE FROM country_of_origins WHERE code = '%s'", code),
		))
	}
	return db.CreateMigrationFromActions(migrationId, actions...)
}
