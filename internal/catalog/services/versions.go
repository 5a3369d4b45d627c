package services

import (
	"context"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/pkg/api"
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	coreServices "github.com/Evolveum/integration-catalog-sub000/pkg/services"
)

type VersionService interface {
	Get(ctx context.Context, id string) (*dbapi.ImplementationVersion, *errors.ServiceError)
	List(ctx context.Context, criteria public.SearchCriteria, size int32, page int32) (dbapi.ImplementationVersionList, *api.PagingMeta, *errors.ServiceError)
	CountDownloads(ctx context.Context, id string) (int64, *errors.ServiceError)
}

var _ VersionService = &versionService{}

type versionService struct {
	connectionFactory *db.ConnectionFactory
}

func NewVersionService(connectionFactory *db.ConnectionFactory) *versionService {
	return &versionService{
		connectionFactory: connectionFactory,
	}
}

func (k *versionService) Get(ctx context.Context, id string) (*dbapi.ImplementationVersion, *errors.ServiceError) {
	dbConn := k.connectionFactory.New()
	var resource dbapi.ImplementationVersion
	if err := dbConn.Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, coreServices.HandleGetError("ImplementationVersion", "id", id, err)
	}
	return &resource, nil
}

func (k *versionService) List(ctx context.Context, criteria public.SearchCriteria, size int32, page int32) (dbapi.ImplementationVersionList, *api.PagingMeta, *errors.ServiceError) {
	if err := validateSearch(size, page); err != nil {
		return nil, nil, err
	}

	var resourceList dbapi.ImplementationVersionList
	pagingMeta := api.PagingMeta{
		Page: int(page),
		Size: int(size),
	}

	dbConn := applyClauses(k.connectionFactory.New().Model(&dbapi.ImplementationVersion{}), buildVersionSearch(criteria))

	var total int64
	if err := dbConn.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count connector versions: %s", err)
	}
	pagingMeta.Total = int(total)

	if err := dbConn.
		Order(orderByID("implementation_versions")).
		Offset(int(page) * int(size)).
		Limit(int(size)).
		Find(&resourceList).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list connector versions: %s", err)
	}

	return resourceList, &pagingMeta, nil
}

// CountDownloads derives the download count from the event log
func (k *versionService) CountDownloads(ctx context.Context, id string) (int64, *errors.ServiceError) {
	dbConn := k.connectionFactory.New()
	var count int64
	if err := dbConn.Model(&dbapi.DownloadEvent{}).Where("version_id = ?", id).Count(&count).Error; err != nil {
		return 0, errors.GeneralError("Unable to count downloads of connector version '%s': %s", id, err)
	}
	return count, nil
}
