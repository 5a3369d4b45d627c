package services

import (
	"context"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/pkg/api"
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	coreServices "github.com/Evolveum/integration-catalog-sub000/pkg/services"
)

// RequestService tracks requests for applications nobody has implemented
// yet, and the votes behind them
type RequestService interface {
	Create(ctx context.Context, resource *dbapi.AppRequest) *errors.ServiceError
	Get(ctx context.Context, id string) (*dbapi.AppRequest, *errors.ServiceError)
	List(ctx context.Context, size int32, page int32) (dbapi.AppRequestList, *api.PagingMeta, *errors.ServiceError)
	Vote(ctx context.Context, requestID string, voter string) *errors.ServiceError
	CountVotes(ctx context.Context, requestID string) (int64, *errors.ServiceError)
}

var _ RequestService = &requestService{}

type requestService struct {
	connectionFactory *db.ConnectionFactory
}

func NewRequestService(connectionFactory *db.ConnectionFactory) *requestService {
	return &requestService{
		connectionFactory: connectionFactory,
	}
}

func (k *requestService) Create(ctx context.Context, resource *dbapi.AppRequest) *errors.ServiceError {
	if resource.ID == "" {
		resource.ID = api.NewID()
	}
	dbConn := k.connectionFactory.New()
	if err := dbConn.Create(resource).Error; err != nil {
		return coreServices.HandleCreateError("AppRequest", err)
	}
	return nil
}

func (k *requestService) Get(ctx context.Context, id string) (*dbapi.AppRequest, *errors.ServiceError) {
	dbConn := k.connectionFactory.New()
	var resource dbapi.AppRequest
	if err := dbConn.Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, coreServices.HandleGetError("AppRequest", "id", id, err)
	}
	return &resource, nil
}

func (k *requestService) List(ctx context.Context, size int32, page int32) (dbapi.AppRequestList, *api.PagingMeta, *errors.ServiceError) {
	if err := validateSearch(size, page); err != nil {
		return nil, nil, err
	}

	var resourceList dbapi.AppRequestList
	pagingMeta := api.PagingMeta{
		Page: int(page),
		Size: int(size),
	}

	dbConn := k.connectionFactory.New().Model(&dbapi.AppRequest{})

	var total int64
	if err := dbConn.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count application requests: %s", err)
	}
	pagingMeta.Total = int(total)

	if err := dbConn.
		Order(orderByID("app_requests")).
		Offset(int(page) * int(size)).
		Limit(int(size)).
		Find(&resourceList).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list application requests: %s", err)
	}

	return resourceList, &pagingMeta, nil
}

// Vote records one voter's support. The unique index on (request_id, voter)
// turns a duplicate vote into a conflict.
func (k *requestService) Vote(ctx context.Context, requestID string, voter string) *errors.ServiceError {
	if _, err := k.Get(ctx, requestID); err != nil {
		return err
	}

	dbConn := k.connectionFactory.New()
	vote := &dbapi.Vote{
		RequestID: requestID,
		Voter:     voter,
	}
	vote.ID = api.NewID()
	if err := dbConn.Create(vote).Error; err != nil {
		return coreServices.HandleCreateError("Vote", err)
	}
	return nil
}

// CountVotes derives the vote count, it is never stored
func (k *requestService) CountVotes(ctx context.Context, requestID string) (int64, *errors.ServiceError) {
	dbConn := k.connectionFactory.New()
	var count int64
	if err := dbConn.Model(&dbapi.Vote{}).Where("request_id = ?", requestID).Count(&count).Error; err != nil {
		return 0, errors.GeneralError("Unable to count votes of request '%s': %s", requestID, err)
	}
	return count, nil
}
