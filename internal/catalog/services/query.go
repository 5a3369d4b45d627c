package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

// searchClause is one filter predicate with its bind arguments. Keeping the
// predicate language a closed list of clauses keeps it testable without a
// storage engine behind it.
type searchClause struct {
	condition string
	args      []interface{}
}

func filter(condition string, args ...interface{}) searchClause {
	return searchClause{condition: condition, args: args}
}

func applyClauses(dbConn *gorm.DB, clauses []searchClause) *gorm.DB {
	for _, c := range clauses {
		dbConn = dbConn.Where(c.condition, c.args...)
	}
	return dbConn
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// validateSearch rejects malformed paging before any query is constructed
func validateSearch(size int32, page int32) *errors.ServiceError {
	if size <= 0 {
		return errors.Validation("page size must be greater than 0, got %d", size)
	}
	if page < 0 {
		return errors.Validation("page index must not be negative, got %d", page)
	}
	return nil
}

// buildApplicationSearch translates criteria into clauses against the
// applications table. The keyword is the only disjunction: a case-insensitive
// substring match across name, display name and description. All other
// present fields combine with AND; absent fields impose no constraint.
func buildApplicationSearch(criteria public.SearchCriteria) []searchClause {
	var clauses []searchClause

	if criteria.Keyword != "" {
		kw := likePattern(criteria.Keyword)
		clauses = append(clauses, filter(
			"LOWER(applications.name) LIKE ? OR LOWER(applications.display_name) LIKE ? OR LOWER(applications.description) LIKE ?",
			kw, kw, kw))
	}
	if criteria.LifecycleState != "" {
		clauses = append(clauses, filter("applications.phase = ?", criteria.LifecycleState))
	}
	if criteria.Tag != "" {
		clauses = append(clauses, filter(
			"applications.id IN (SELECT application_tags.application_id FROM application_tags JOIN tags ON tags.id = application_tags.tag_id WHERE tags.name = ?)",
			criteria.Tag))
	}
	if criteria.Country != "" {
		clauses = append(clauses, filter(
			"applications.id IN (SELECT application_countries.application_id FROM application_countries JOIN country_of_origins ON country_of_origins.id = application_countries.country_of_origin_id WHERE country_of_origins.code = ?)",
			criteria.Country))
	}
	if criteria.Maintainer != "" {
		clauses = append(clauses, filter(
			"applications.id IN (SELECT implementations.application_id FROM implementations WHERE LOWER(implementations.maintainer) LIKE ?)",
			likePattern(criteria.Maintainer)))
	}
	if criteria.SystemVersion != "" {
		clauses = append(clauses, filter(
			"applications.id IN (SELECT implementations.application_id FROM implementations JOIN implementation_versions ON implementation_versions.implementation_id = implementations.id WHERE LOWER(implementation_versions.system_version) LIKE ?)",
			likePattern(criteria.SystemVersion)))
	}

	return clauses
}

// buildVersionSearch translates criteria into clauses against the
// implementation_versions table. The keyword triple matches the owning
// implementation's name and display name plus the version's description.
func buildVersionSearch(criteria public.SearchCriteria) []searchClause {
	var clauses []searchClause

	if criteria.Keyword != "" {
		kw := likePattern(criteria.Keyword)
		clauses = append(clauses, filter(
			"LOWER(implementation_versions.description) LIKE ? OR implementation_versions.implementation_id IN "+
				"(SELECT implementations.id FROM implementations WHERE LOWER(implementations.name) LIKE ? OR LOWER(implementations.display_name) LIKE ?)",
			kw, kw, kw))
	}
	if criteria.LifecycleState != "" {
		clauses = append(clauses, filter("implementation_versions.phase = ?", criteria.LifecycleState))
	}
	if criteria.Tag != "" {
		clauses = append(clauses, filter(
			"implementation_versions.implementation_id IN (SELECT implementation_tags.implementation_id FROM implementation_tags JOIN tags ON tags.id = implementation_tags.tag_id WHERE tags.name = ?)",
			criteria.Tag))
	}
	if criteria.Country != "" {
		clauses = append(clauses, filter(
			"implementation_versions.implementation_id IN (SELECT implementations.id FROM implementations WHERE implementations.application_id IN "+
				"(SELECT application_countries.application_id FROM application_countries JOIN country_of_origins ON country_of_origins.id = application_countries.country_of_origin_id WHERE country_of_origins.code = ?))",
			criteria.Country))
	}
	if criteria.Maintainer != "" {
		clauses = append(clauses, filter(
			"implementation_versions.implementation_id IN (SELECT implementations.id FROM implementations WHERE LOWER(implementations.maintainer) LIKE ?)",
			likePattern(criteria.Maintainer)))
	}
	if criteria.SystemVersion != "" {
		clauses = append(clauses, filter(
			"LOWER(implementation_versions.system_version) LIKE ?", likePattern(criteria.SystemVersion)))
	}

	return clauses
}

// orderByID is the fixed result order of all catalog searches
func orderByID(table string) string {
	return fmt.Sprintf("%s.id ASC", table)
}
