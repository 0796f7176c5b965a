package rest

import (
	"context"
	"net/http"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
)

type ServicesClient struct {
	req ports.Requester
}

func NewServicesClient(req ports.Requester) *ServicesClient {
	return &ServicesClient{req: req}
}

type serviceList struct {
	Data       []domain.Service `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

func (c *ServicesClient) List(ctx context.Context, opts ListOptions) ([]domain.Service, Pagination, error) {
	var out serviceList
	if err := c.req.Do(ctx, http.MethodGet, "/api/services", opts.values(), nil, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out.Data, out.Pagination, nil
}

func (c *ServicesClient) Create(ctx context.Context, svc domain.Service) (*domain.Service, error) {
	var out struct {
		Data domain.Service `json:"data"`
	}
	if err := c.req.Do(ctx, http.MethodPost, "/api/services", nil, svc, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *ServicesClient) Update(ctx context.Context, id string, svc domain.Service) error {
	return c.req.Do(ctx, http.MethodPut, "/api/services/"+id, nil, svc, nil)
}

func (c *ServicesClient) Delete(ctx context.Context, id string) error {
	return c.req.Do(ctx, http.MethodDelete, "/api/services/"+id, nil, nil, nil)
}
