package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
	"github.com/svcdesk/adminconsole/internal/metrics"
)

// OrderReconciler computes the minimal set of line operations that move an
// order's persisted service list to its edited state, then applies them.
type OrderReconciler struct {
	api    ports.OrderLineAPI
	logger zerolog.Logger
}

func NewOrderReconciler(api ports.OrderLineAPI, logger zerolog.Logger) *OrderReconciler {
	return &OrderReconciler{api: api, logger: logger}
}

// Reconcile diffs the edited lines against the original snapshot. The edit
// form allows adding the same service twice, so edited entries are first
// aggregated by service id, summing their quantities. Entries with an empty
// id or a non-positive quantity are dropped before aggregation.
//
// The result is minimal: unchanged lines emit nothing. It is a pure function
// of its inputs; deletes come out in original-snapshot order, creates and
// updates in first-appearance order of the edit list.
func Reconcile(original []domain.OrderServiceLine, edited []domain.LineEdit) []domain.LineOp {
	aggregated := make(map[string]int, len(edited))
	editOrder := make([]string, 0, len(edited))
	for _, e := range edited {
		if e.ServiceID == "" || e.NumberOfUnit <= 0 {
			continue
		}
		if _, seen := aggregated[e.ServiceID]; !seen {
			editOrder = append(editOrder, e.ServiceID)
		}
		aggregated[e.ServiceID] += e.NumberOfUnit
	}

	originalByID := make(map[string]domain.OrderServiceLine, len(original))
	for _, line := range original {
		originalByID[line.ServiceID] = line
	}

	var ops []domain.LineOp
	for _, line := range original {
		if _, kept := aggregated[line.ServiceID]; !kept {
			ops = append(ops, domain.LineOp{Kind: domain.LineOpDelete, ServiceID: line.ServiceID})
		}
	}
	for _, id := range editOrder {
		units := aggregated[id]
		orig, existed := originalByID[id]
		switch {
		case !existed:
			ops = append(ops, domain.LineOp{Kind: domain.LineOpCreate, ServiceID: id, NumberOfUnit: units})
		case orig.NumberOfUnit != units:
			ops = append(ops, domain.LineOp{Kind: domain.LineOpUpdate, ServiceID: id, NumberOfUnit: units})
		}
	}
	return ops
}

// Apply issues the operations as independent backend calls, concurrently and
// with no ordering guarantee between them, and waits for all of them. Success
// is reported only if every call succeeds; failures are combined into one
// error. There is no rollback: a partial failure leaves the order mixed, and
// the only recovery is re-opening the edit form against the new truth.
func (r *OrderReconciler) Apply(ctx context.Context, orderID string, ops []domain.LineOp) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, op := range ops {
		metrics.ReconcilerOpsTotal.WithLabelValues(string(op.Kind)).Inc()
		wg.Add(1)
		go func(op domain.LineOp) {
			defer wg.Done()
			if err := r.applyOne(ctx, orderID, op); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s %s: %w", op.Kind, op.ServiceID, err))
				mu.Unlock()
			}
		}(op)
	}
	wg.Wait()

	if len(errs) > 0 {
		r.logger.Error().Str("order_id", orderID).Int("failed", len(errs)).Int("total", len(ops)).
			Msg("order update partially failed")
		return errors.Join(errs...)
	}
	return nil
}

func (r *OrderReconciler) applyOne(ctx context.Context, orderID string, op domain.LineOp) error {
	switch op.Kind {
	case domain.LineOpCreate:
		return r.api.AddService(ctx, orderID, domain.LineEdit{ServiceID: op.ServiceID, NumberOfUnit: op.NumberOfUnit})
	case domain.LineOpUpdate:
		return r.api.UpdateService(ctx, orderID, op.ServiceID, op.NumberOfUnit)
	case domain.LineOpDelete:
		return r.api.RemoveService(ctx, orderID, op.ServiceID)
	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}
