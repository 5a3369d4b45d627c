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

type ApplicationService interface {
	Get(ctx context.Context, id string) (*dbapi.Application, *errors.ServiceError)
	GetByName(ctx context.Context, name string) (*dbapi.Application, *errors.ServiceError)
	Create(ctx context.Context, resource *dbapi.Application) *errors.ServiceError
	Update(ctx context.Context, resource *dbapi.Application) *errors.ServiceError
	List(ctx context.Context, criteria public.SearchCriteria, size int32, page int32) (dbapi.ApplicationList, *api.PagingMeta, *errors.ServiceError)
	GetLogo(ctx context.Context, id string) ([]byte, *errors.ServiceError)
}

var _ ApplicationService = &applicationService{}

type applicationService struct {
	connectionFactory *db.ConnectionFactory
}

func NewApplicationService(connectionFactory *db.ConnectionFactory) *applicationService {
	return &applicationService{
		connectionFactory: connectionFactory,
	}
}

func (k *applicationService) Get(ctx context.Context, id string) (*dbapi.Application, *errors.ServiceError) {
	dbConn := k.connectionFactory.New()
	var resource dbapi.Application
	if err := dbConn.
		Preload("Tags").
		Preload("Countries").
		Preload("Implementations").
		Preload("Implementations.Versions").
		Where("id = ?", id).
		First(&resource).Error; err != nil {
		return nil, coreServices.HandleGetError("Application", "id", id, err)
	}
	return &resource, nil
}

func (k *applicationService) GetByName(ctx context.Context, name string) (*dbapi.Application, *errors.ServiceError) {
	dbConn := k.connectionFactory.New()
	var resource dbapi.Application
	if err := dbConn.
		Preload("Tags").
		Preload("Countries").
		Preload("Implementations").
		Where("name = ?", name).
		First(&resource).Error; err != nil {
		return nil, coreServices.HandleGetError("Application", "name", name, err)
	}
	return &resource, nil
}

func (k *applicationService) Create(ctx context.Context, resource *dbapi.Application) *errors.ServiceError {
	if resource.ID == "" {
		resource.ID = api.NewID()
	}
	dbConn := k.connectionFactory.New()
	if err := dbConn.Create(resource).Error; err != nil {
		return coreServices.HandleCreateError("Application", err)
	}
	return nil
}

func (k *applicationService) Update(ctx context.Context, resource *dbapi.Application) *errors.ServiceError {
	dbConn := k.connectionFactory.New()
	if err := dbConn.Model(resource).Updates(resource).Error; err != nil {
		return coreServices.HandleUpdateError("Application", err)
	}
	return nil
}

func (k *applicationService) List(ctx context.Context, criteria public.SearchCriteria, size int32, page int32) (dbapi.ApplicationList, *api.PagingMeta, *errors.ServiceError) {
	if err := validateSearch(size, page); err != nil {
		return nil, nil, err
	}

	var resourceList dbapi.ApplicationList
	pagingMeta := api.PagingMeta{
		Page: int(page),
		Size: int(size),
	}

	dbConn := applyClauses(k.connectionFactory.New().Model(&dbapi.Application{}), buildApplicationSearch(criteria))

	var total int64
	if err := dbConn.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count applications: %s", err)
	}
	pagingMeta.Total = int(total)

	if err := dbConn.
		Preload("Tags").
		Preload("Countries").
		Preload("Implementations").
		Order(orderByID("applications")).
		Offset(int(page) * int(size)).
		Limit(int(size)).
		Find(&resourceList).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list applications: %s", err)
	}

	return resourceList, &pagingMeta, nil
}

func (k *applicationService) GetLogo(ctx context.Context, id string) ([]byte, *errors.ServiceError) {
	dbConn := k.connectionFactory.New()
	var resource dbapi.Application
	if err := dbConn.Select("id", "logo").Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, coreServices.HandleGetError("Application", "id", id, err)
	}
	if len(resource.Logo) == 0 {
		return nil, errors.NotFound("Application with id='%s' has no logo", id)
	}
	return resource.Logo, nil
}
