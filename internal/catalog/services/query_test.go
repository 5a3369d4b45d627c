package services

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
)

func Test_validateSearch(t *testing.T) {
	RegisterTestingT(t)

	tests := []struct {
		name    string
		size    int32
		page    int32
		wantErr bool
	}{
		{
			name: "first page",
			size: 20,
			page: 0,
		},
		{
			name: "later page",
			size: 20,
			page: 7,
		},
		{
			name:    "zero size is rejected",
			size:    0,
			page:    0,
			wantErr: true,
		},
		{
			name:    "negative size is rejected",
			size:    -5,
			page:    0,
			wantErr: true,
		},
		{
			name:    "negative page is rejected",
			size:    20,
			page:    -1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSearch(tt.size, tt.page)
			Expect(err != nil).To(Equal(tt.wantErr))
		})
	}
}

func Test_buildApplicationSearch(t *testing.T) {
	RegisterTestingT(t)

	tests := []struct {
		name        string
		criteria    public.SearchCriteria
		wantClauses int
		// checkFn inspects the produced clauses beyond their count
		checkFn func(clauses []searchClause)
	}{
		{
			name:        "empty criteria imposes no constraint",
			criteria:    public.SearchCriteria{},
			wantClauses: 0,
		},
		{
			name:        "keyword is a single disjunctive clause with lowercased patterns",
			criteria:    public.SearchCriteria{Keyword: "LDAP"},
			wantClauses: 1,
			checkFn: func(clauses []searchClause) {
				Expect(clauses[0].condition).To(ContainSubstring(" OR "))
				Expect(clauses[0].args).To(Equal([]interface{}{"%ldap%", "%ldap%", "%ldap%"}))
			},
		},
		{
			name: "present criteria combine as separate conjunctive clauses",
			criteria: public.SearchCriteria{
				Keyword:        "directory",
				LifecycleState: "active",
				Maintainer:     "Evolveum",
			},
			wantClauses: 3,
			checkFn: func(clauses []searchClause) {
				Expect(clauses[1].condition).To(Equal("applications.phase = ?"))
				Expect(clauses[1].args).To(Equal([]interface{}{"active"}))
				Expect(clauses[2].args).To(Equal([]interface{}{"%evolveum%"}))
			},
		},
		{
			name: "tag and country filter through the join tables",
			criteria: public.SearchCriteria{
				Tag:     "directory",
				Country: "CZ",
			},
			wantClauses: 2,
			checkFn: func(clauses []searchClause) {
				Expect(clauses[0].condition).To(ContainSubstring("application_tags"))
				Expect(clauses[0].args).To(Equal([]interface{}{"directory"}))
				Expect(clauses[1].condition).To(ContainSubstring("application_countries"))
				Expect(clauses[1].args).To(Equal([]interface{}{"CZ"}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses := buildApplicationSearch(tt.criteria)
			Expect(clauses).To(HaveLen(tt.wantClauses))
			if tt.checkFn != nil {
				tt.checkFn(clauses)
			}
		})
	}
}

func Test_buildVersionSearch(t *testing.T) {
	RegisterTestingT(t)

	tests := []struct {
		name        string
		criteria    public.SearchCriteria
		wantClauses int
		checkFn     func(clauses []searchClause)
	}{
		{
			name:        "keyword reaches the owning implementation",
			criteria:    public.SearchCriteria{Keyword: "ScimV2"},
			wantClauses: 1,
			checkFn: func(clauses []searchClause) {
				Expect(clauses[0].condition).To(ContainSubstring("implementations.display_name"))
				Expect(clauses[0].args).To(Equal([]interface{}{"%scimv2%", "%scimv2%", "%scimv2%"}))
			},
		},
		{
			name:        "lifecycle state matches the version phase exactly",
			criteria:    public.SearchCriteria{LifecycleState: "deprecated"},
			wantClauses: 1,
			checkFn: func(clauses []searchClause) {
				Expect(clauses[0].condition).To(Equal("implementation_versions.phase = ?"))
				Expect(clauses[0].args).To(Equal([]interface{}{"deprecated"}))
			},
		},
		{
			name:        "system version is a substring match",
			criteria:    public.SearchCriteria{SystemVersion: "2.4"},
			wantClauses: 1,
			checkFn: func(clauses []searchClause) {
				Expect(clauses[0].args).To(Equal([]interface{}{"%2.4%"}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses := buildVersionSearch(tt.criteria)
			Expect(clauses).To(HaveLen(tt.wantClauses))
			if tt.checkFn != nil {
				tt.checkFn(clauses)
			}
		})
	}
}
