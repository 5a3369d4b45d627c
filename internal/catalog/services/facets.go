package services

import (
	"context"

	"github.com/patrickmn/go-cache"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/config"
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

const (
	tagsCacheKey      = "tags"
	countriesCacheKey = "countries"
)

// FacetService serves the tag and country lists used to filter the catalog.
// Both change rarely, so reads go through a short lived cache.
type FacetService interface {
	Tags(ctx context.Context) (dbapi.TagList, *errors.ServiceError)
	Countries(ctx context.Context) (dbapi.CountryOfOriginList, *errors.ServiceError)
}

var _ FacetService = &facetService{}

type facetService struct {
	connectionFactory *db.ConnectionFactory
	cache             *cache.Cache
}

func NewFacetService(connectionFactory *db.ConnectionFactory, catalogConfig *config.CatalogConfig) *facetService {
	return &facetService{
		connectionFactory: connectionFactory,
		cache:             cache.New(catalogConfig.FacetCacheTTL, 2*catalogConfig.FacetCacheTTL),
	}
}

func (k *facetService) Tags(ctx context.Context) (dbapi.TagList, *errors.ServiceError) {
	if cached, ok := k.cache.Get(tagsCacheKey); ok {
		return cached.(dbapi.TagList), nil
	}

	dbConn := k.connectionFactory.New()
	var tags dbapi.TagList
	if err := dbConn.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, errors.GeneralError("Unable to list tags: %s", err)
	}

	k.cache.SetDefault(tagsCacheKey, tags)
	return tags, nil
}

func (k *facetService) Countries(ctx context.Context) (dbapi.CountryOfOriginList, *errors.ServiceError) {
	if cached, ok := k.cache.Get(countriesCacheKey); ok {
		return cached.(dbapi.CountryOfOriginList), nil
	}

	dbConn := k.connectionFactory.New()
	var countries dbapi.CountryOfOriginList
	if err := dbConn.Order("name ASC").Find(&countries).Error; err != nil {
		return nil, errors.GeneralError("Unable to list countries of origin: %s", err)
	}

	k.cache.SetDefault(countriesCacheKey, countries)
	return countries, nil
}
