package rest

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
	"github.com/svcdesk/adminconsole/internal/gateway"
)

type CustomersClient struct {
	req ports.Requester
}

func NewCustomersClient(req ports.Requester) *CustomersClient {
	return &CustomersClient{req: req}
}

type customerList struct {
	Data       []domain.Customer `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

func (c *CustomersClient) List(ctx context.Context, opts ListOptions) ([]domain.Customer, Pagination, error) {
	var out customerList
	if err := c.req.Do(ctx, http.MethodGet, "/api/customers", opts.values(), nil, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out.Data, out.Pagination, nil
}

// Search matches customers by name or phone number; used by the order form's
// customer autocomplete.
func (c *CustomersClient) Search(ctx context.Context, query string) ([]domain.Customer, error) {
	q := url.Values{}
	q.Set("q", query)
	var out customerList
	if err := c.req.Do(ctx, http.MethodGet, "/api/customers/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *CustomersClient) Get(ctx context.Context, id string) (*domain.Customer, error) {
	var out struct {
		Data domain.Customer `json:"data"`
	}
	if err := c.req.Do(ctx, http.MethodGet, "/api/customers/"+id, nil, nil, &out); err != nil {
		var he *gateway.HTTPError
		if errors.As(err, &he) && he.StatusCode == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out.Data, nil
}

func (c *CustomersClient) Create(ctx context.Context, cust domain.Customer) (*domain.Customer, error) {
	var out struct {
		Data domain.Customer `json:"data"`
	}
	if err := c.req.Do(ctx, http.MethodPost, "/api/customers", nil, cust, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *CustomersClient) Update(ctx context.Context, id string, cust domain.Customer) error {
	return c.req.Do(ctx, http.MethodPut, "/api/customers/"+id, nil, cust, nil)
}

func (c *CustomersClient) Delete(ctx context.Context, id string) error {
	return c.req.Do(ctx, http.MethodDelete, "/api/customers/"+id, nil, nil, nil)
}
