package presenters

import (
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/pkg/api"
)

func ConvertAppRequest(payload public.AppRequestPayload) *dbapi.AppRequest {
	return &dbapi.AppRequest{
		Name:        payload.Name,
		Description: payload.Description,
		Requester:   payload.Requester,
	}
}

func PresentAppRequest(request *dbapi.AppRequest, votes int64) public.AppRequest {
	return public.AppRequest{
		Id:          request.ID,
		Kind:        KindAppRequest,
		Href:        Href("requests", request.ID),
		Name:        request.Name,
		Description: request.Description,
		Requester:   request.Requester,
		Votes:       votes,
		CreatedAt:   request.CreatedAt,
	}
}

func PresentAppRequestList(requests dbapi.AppRequestList, votes map[string]int64, paging *api.PagingMeta) public.AppRequestList {
	items := make([]public.AppRequest, 0, len(requests))
	for _, request := range requests {
		items = append(items, PresentAppRequest(request, votes[request.ID]))
	}
	return public.AppRequestList{
		Kind:  KindAppRequestList,
		Page:  int32(paging.Page),
		Size:  int32(len(items)),
		Total: int32(paging.Total),
		Items: items,
	}
}
