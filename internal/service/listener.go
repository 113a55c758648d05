package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/satboard/satboard-backend/internal/domain"
)

// SettlementListener owns the single long-lived subscription to the
// settlement feed and drives the Reconciler. One listener runs for the
// lifetime of the process; events are processed in stream order.
type SettlementListener struct {
	source     domain.SettlementSource
	reconciler *Reconciler
	tag        string
	logger     zerolog.Logger
	stopCh     chan struct{}
	doneCh     chan struct{}
	mu         sync.Mutex
	running    bool
}

// NewSettlementListener creates a new SettlementListener
func NewSettlementListener(source domain.SettlementSource, reconciler *Reconciler, logger zerolog.Logger) *SettlementListener {
	return &SettlementListener{
		source:     source,
		reconciler: reconciler,
		tag:        domain.SettlementTag,
		logger:     logger.With().Str("component", "settlement_listener").Logger(),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start subscribes to the settlement feed and begins processing events
func (l *SettlementListener) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil
	}
	l.running = true
	l.mu.Unlock()

	events, err := l.source.Subscribe(ctx, l.tag)
	if err != nil {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
		return err
	}

	l.logger.Info().Str("tag", l.tag).Msg("Starting settlement listener")
	go l.run(ctx, events)
	return nil
}

// Stop gracefully stops the listener. The event being processed when Stop is
// called finishes its commit before the loop exits.
func (l *SettlementListener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	l.logger.Info().Msg("Stopping settlement listener")
	close(l.stopCh)
	<-l.doneCh
	l.logger.Info().Msg("Settlement listener stopped")
}

// IsRunning returns whether the listener is currently running
func (l *SettlementListener) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *SettlementListener) run(ctx context.Context, events <-chan domain.SettlementEvent) {
	defer close(l.doneCh)
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stopCh:
			return
		case event, ok := <-events:
			if !ok {
				l.logger.Info().Msg("Settlement feed closed")
				return
			}
			l.handle(ctx, event)
		}
	}
}

// handle processes one settlement event. No event may terminate the loop:
// malformed and stale events are logged and dropped.
func (l *SettlementListener) handle(ctx context.Context, event domain.SettlementEvent) {
	if event.Tag != l.tag {
		return
	}

	if event.DashboardID == "" {
		l.logger.Warn().
			Str("checking_id", event.CheckingID).
			Int64("amount", event.AmountSats).
			Msg("Settlement event missing dashboard id, dropped")
		return
	}

	dashboard, err := l.reconciler.Reconcile(ctx, event)
	if err != nil {
		if errors.Is(err, domain.ErrDashboardNotFound) {
			// Expected race with deletion, not an error
			l.logger.Debug().
				Str("dashboard_id", event.DashboardID).
				Str("checking_id", event.CheckingID).
				Msg("Settlement for deleted dashboard dropped")
			return
		}
		l.logger.Error().
			Err(err).
			Str("dashboard_id", event.DashboardID).
			Str("checking_id", event.CheckingID).
			Msg("Failed to reconcile settlement")
		return
	}

	l.logger.Info().
		Str("dashboard_id", dashboard.ID).
		Int64("amount", event.AmountSats).
		Bool("withdrawal", event.IsWithdrawal).
		Int64("total", dashboard.Total).
		Msg("Settlement reconciled")
}
