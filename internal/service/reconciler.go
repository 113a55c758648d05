package service

import (
	"context"

	"github.com/satboard/satboard-backend/internal/domain"
	"github.com/satboard/satboard-backend/internal/websocket"
)

// Reconciler applies settlement events to dashboard running totals.
// The read-modify-write of the total happens store-side, so concurrent
// reconciliations for the same dashboard cannot lose an update.
type Reconciler struct {
	dashboardRepo  domain.DashboardRepository
	eventPublisher websocket.EventPublisher
}

// NewReconciler creates a new Reconciler
func NewReconciler(dashboardRepo domain.DashboardRepository) *Reconciler {
	return &Reconciler{dashboardRepo: dashboardRepo}
}

// SetEventPublisher sets the publisher used for live-view updates
func (r *Reconciler) SetEventPublisher(publisher websocket.EventPublisher) {
	r.eventPublisher = publisher
}

// Reconcile commits one settlement event: withdrawals subtract the settled
// amount, deposits add it. Returns the updated dashboard, or
// domain.ErrDashboardNotFound if the dashboard vanished before the commit,
// a benign race with deletion that is left to the caller to log.
//
// The live-view notification is best-effort: the balance update stands
// whether or not any viewer receives it.
func (r *Reconciler) Reconcile(ctx context.Context, event domain.SettlementEvent) (*domain.Dashboard, error) {
	delta := event.AmountSats
	if event.IsWithdrawal {
		delta = -delta
	}

	dashboard, err := r.dashboardRepo.AtomicAdjustTotal(ctx, event.DashboardID, delta)
	if err != nil {
		return nil, err
	}

	r.notify(dashboard, event)
	return dashboard, nil
}

func (r *Reconciler) notify(dashboard *domain.Dashboard, event domain.SettlementEvent) {
	if r.eventPublisher == nil {
		return
	}

	payload := websocket.NewPaymentPayload(dashboard.Name, event.AmountSats, event.FeeMsat, event.CheckingID, dashboard.Total)
	if event.IsWithdrawal {
		r.eventPublisher.Publish(dashboard.ID, websocket.PaymentWithdrawn(payload))
	} else {
		r.eventPublisher.Publish(dashboard.ID, websocket.PaymentReceived(payload))
	}
}
