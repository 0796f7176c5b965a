package rest

import (
	"context"
	"net/http"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
)

type ExpensesClient struct {
	req ports.Requester
}

func NewExpensesClient(req ports.Requester) *ExpensesClient {
	return &ExpensesClient{req: req}
}

func (c *ExpensesClient) List(ctx context.Context, rng DateRange, opts ListOptions) ([]domain.Expense, Pagination, error) {
	q := rng.apply(opts.values())
	var out struct {
		Data       []domain.Expense `json:"data"`
		Pagination Pagination       `json:"pagination"`
	}
	if err := c.req.Do(ctx, http.MethodGet, "/api/expenses", q, nil, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out.Data, out.Pagination, nil
}

func (c *ExpensesClient) Create(ctx context.Context, e domain.Expense) (*domain.Expense, error) {
	var out struct {
		Data domain.Expense `json:"data"`
	}
	if err := c.req.Do(ctx, http.MethodPost, "/api/expenses", nil, e, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *ExpensesClient) Update(ctx context.Context, id string, e domain.Expense) error {
	return c.req.Do(ctx, http.MethodPut, "/api/expenses/"+id, nil, e, nil)
}

func (c *ExpensesClient) Delete(ctx context.Context, id string) error {
	return c.req.Do(ctx, http.MethodDelete, "/api/expenses/"+id, nil, nil, nil)
}
