package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
)

type OrdersClient struct {
	req ports.Requester
}

func NewOrdersClient(req ports.Requester) *OrdersClient {
	return &OrdersClient{req: req}
}

type orderList struct {
	Data       []domain.Order `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// ListByDate returns the orders placed on the given day.
func (c *OrdersClient) ListByDate(ctx context.Context, date time.Time, opts ListOptions) ([]domain.Order, Pagination, error) {
	q := opts.values()
	q.Set("date", date.Format("2006-01-02"))
	var out orderList
	if err := c.req.Do(ctx, http.MethodGet, "/api/orders", q, nil, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out.Data, out.Pagination, nil
}

// NewOrder is the create payload: customer snapshot plus initial lines.
type NewOrder struct {
	OrderDate    time.Time           `json:"orderDate"`
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
	HandlerID    string              `json:"handlerId,omitempty"`
	DiscountID   string              `json:"discountId,omitempty"`
	Services     []domain.LineEdit   `json:"services"`
}

func (c *OrdersClient) Create(ctx context.Context, order NewOrder) (*domain.Order, error) {
	var out struct {
		Data domain.Order `json:"data"`
	}
	if err := c.req.Do(ctx, http.MethodPost, "/api/orders", nil, order, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// OrderDetails updates the order's own fields. Service lines are not part of
// this call; the reconciler drives those through the per-line endpoints.
type OrderDetails struct {
	OrderDate    time.Time           `json:"orderDate"`
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
	HandlerID    string              `json:"handlerId,omitempty"`
	DiscountID   string              `json:"discountId,omitempty"`
	Status       domain.OrderStatus  `json:"orderStatus"`
}

func (c *OrdersClient) Update(ctx context.Context, orderID string, details OrderDetails) error {
	return c.req.Do(ctx, http.MethodPut, "/api/orders/"+orderID, nil, details, nil)
}

func (c *OrdersClient) Delete(ctx context.Context, orderID string) error {
	return c.req.Do(ctx, http.MethodDelete, "/api/orders/"+orderID, nil, nil, nil)
}

// --- per-line endpoints; OrdersClient satisfies ports.OrderLineAPI ---

func (c *OrdersClient) AddService(ctx context.Context, orderID string, line domain.LineEdit) error {
	return c.req.Do(ctx, http.MethodPost, "/api/orders/"+orderID+"/services", nil, line, nil)
}

func (c *OrdersClient) UpdateService(ctx context.Context, orderID, serviceID string, numberOfUnit int) error {
	body := map[string]int{"numberOfUnit": numberOfUnit}
	return c.req.Do(ctx, http.MethodPut, "/api/orders/"+orderID+"/services/"+serviceID, nil, body, nil)
}

func (c *OrdersClient) RemoveService(ctx context.Context, orderID, serviceID string) error {
	return c.req.Do(ctx, http.MethodDelete, "/api/orders/"+orderID+"/services/"+serviceID, nil, nil, nil)
}

// DailyRevenue returns the revenue analytics rows for a date range.
func (c *OrdersClient) DailyRevenue(ctx context.Context, rng DateRange, opts ListOptions) ([]domain.DailyRevenue, Pagination, error) {
	q := rng.apply(opts.values())
	var out struct {
		Data       []domain.DailyRevenue `json:"data"`
		Pagination Pagination            `json:"pagination"`
	}
	if err := c.req.Do(ctx, http.MethodGet, "/api/orders/analytics/daily", q, nil, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out.Data, out.Pagination, nil
}

var _ ports.OrderLineAPI = (*OrdersClient)(nil)
