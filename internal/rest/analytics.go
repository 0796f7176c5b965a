package rest

import (
	"context"
	"net/http"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
)

type AnalyticsClient struct {
	req ports.Requester
}

func NewAnalyticsClient(req ports.Requester) *AnalyticsClient {
	return &AnalyticsClient{req: req}
}

// Financial returns the revenue/expense summary for the dashboard cards.
func (c *AnalyticsClient) Financial(ctx context.Context, rng DateRange) (*domain.FinancialSummary, error) {
	var out struct {
		Data domain.FinancialSummary `json:"data"`
	}
	if err := c.req.Do(ctx, http.MethodGet, "/api/analytics/financial", rng.apply(nil), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Traffic returns the order-traffic series for the dashboard chart.
func (c *AnalyticsClient) Traffic(ctx context.Context, rng DateRange) ([]domain.TrafficPoint, error) {
	var out struct {
		Data []domain.TrafficPoint `json:"data"`
	}
	if err := c.req.Do(ctx, http.MethodGet, "/api/analytics/traffic", rng.apply(nil), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
