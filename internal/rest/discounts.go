package rest

import (
	"context"
	"net/http"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
)

type DiscountsClient struct {
	req ports.Requester
}

func NewDiscountsClient(req ports.Requester) *DiscountsClient {
	return &DiscountsClient{req: req}
}

type discountList struct {
	Data       []domain.Discount `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

func (c *DiscountsClient) List(ctx context.Context, opts ListOptions) ([]domain.Discount, Pagination, error) {
	var out discountList
	if err := c.req.Do(ctx, http.MethodGet, "/api/discounts", opts.values(), nil, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out.Data, out.Pagination, nil
}

func (c *DiscountsClient) Create(ctx context.Context, d domain.Discount) (*domain.Discount, error) {
	var out struct {
		Data domain.Discount `json:"data"`
	}
	if err := c.req.Do(ctx, http.MethodPost, "/api/discounts", nil, d, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *DiscountsClient) Update(ctx context.Context, id string, d domain.Discount) error {
	return c.req.Do(ctx, http.MethodPut, "/api/discounts/"+id, nil, d, nil)
}

func (c *DiscountsClient) Delete(ctx context.Context, id string) error {
	return c.req.Do(ctx, http.MethodDelete, "/api/discounts/"+id, nil, nil, nil)
}
