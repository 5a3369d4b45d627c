package services

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/patrickmn/go-cache"
	mocket "github.com/selvatico/go-mocket"

	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

func Test_facetService_Tags(t *testing.T) {
	RegisterTestingT(t)

	queries := 0
	mocket.Catcher.Reset()
	mocket.Catcher.NewMock().
		WithQuery(`SELECT * FROM "tags"`).
		WithReply([]map[string]interface{}{
			{"id": "tag-1", "name": "directory"},
			{"id": "tag-2", "name": "ldap"},
		}).
		WithCallback(func(string, []driver.NamedValue) { queries++ })

	k := &facetService{
		connectionFactory: db.NewMockConnectionFactory(nil),
		cache:             cache.New(5*time.Minute, 10*time.Minute),
	}

	tags, err := k.Tags(context.Background())
	Expect(err).To(BeNil())
	Expect(tags).To(HaveLen(2))
	Expect(tags[0].Name).To(Equal("directory"))

	// the second read is served from cache
	tags, err = k.Tags(context.Background())
	Expect(err).To(BeNil())
	Expect(tags).To(HaveLen(2))
	Expect(queries).To(Equal(1))
}

func Test_facetService_Countries(t *testing.T) {
	RegisterTestingT(t)

	mocket.Catcher.Reset()
	mocket.Catcher.NewMock().
		WithQuery(`SELECT * FROM "country_of_origins"`).
		WithReply([]map[string]interface{}{
			{"id": "country-cz", "code": "CZ", "name": "Czechia"},
		})

	k := &facetService{
		connectionFactory: db.NewMockConnectionFactory(nil),
		cache:             cache.New(5*time.Minute, 10*time.Minute),
	}

	countries, err := k.Countries(context.Background())
	Expect(err).To(BeNil())
	Expect(countries).To(HaveLen(1))
	Expect(countries[0].Code).To(Equal("CZ"))
}
