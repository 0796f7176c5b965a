package ports

import (
	"context"

	"github.com/svcdesk/adminconsole/internal/core/domain"
)

// OrderLineAPI is the per-line slice of the orders resource the reconciler
// applies its operations through.
type OrderLineAPI interface {
	AddService(ctx context.Context, orderID string, line domain.LineEdit) error
	UpdateService(ctx context.Context, orderID, serviceID string, numberOfUnit int) error
	RemoveService(ctx context.Context, orderID, serviceID string) error
}
