package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/satboard/satboard-backend/internal/domain"
	"github.com/satboard/satboard-backend/internal/websocket"
)

// DashboardService handles dashboard CRUD and ownership checks. The running
// total is out of its reach: only the Reconciler writes it.
type DashboardService struct {
	dashboardRepo  domain.DashboardRepository
	engine         domain.InvoiceEngine
	publicURL      string
	eventPublisher websocket.EventPublisher
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(dashboardRepo domain.DashboardRepository, engine domain.InvoiceEngine, publicURL string) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		engine:        engine,
		publicURL:     publicURL,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *DashboardService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *DashboardService) publishEvent(dashboardID string, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(dashboardID, event)
	}
}

// withLinks fills the derived LNURL links on a dashboard
func (s *DashboardService) withLinks(d *domain.Dashboard) *domain.Dashboard {
	d.LnurlPay = fmt.Sprintf("%s/api/v1/lnurl/pay/%s", s.publicURL, d.ID)
	d.LnurlWithdraw = fmt.Sprintf("%s/api/v1/lnurl/withdraw/%s", s.publicURL, d.ID)
	return d
}

// Create creates a new dashboard owned by the caller's wallet
func (s *DashboardService) Create(ctx context.Context, wallet string, data domain.CreateDashboardData) (*domain.Dashboard, error) {
	data.Wallet = wallet
	if err := data.Validate(); err != nil {
		return nil, err
	}

	dashboard := &domain.Dashboard{
		ID:             uuid.New().String(),
		Name:           data.Name,
		PayAmount:      data.PayAmount,
		WithdrawAmount: data.WithdrawAmount,
		Wallet:         data.Wallet,
		Total:          0,
	}

	created, err := s.dashboardRepo.Create(ctx, dashboard)
	if err != nil {
		return nil, err
	}
	return s.withLinks(created), nil
}

// Get retrieves a dashboard owned by the caller's wallet
func (s *DashboardService) Get(ctx context.Context, wallet, id string) (*domain.Dashboard, error) {
	dashboard, err := s.dashboardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dashboard.Wallet != wallet {
		return nil, domain.ErrForbidden
	}
	return s.withLinks(dashboard), nil
}

// List retrieves all dashboards owned by the caller's wallet
func (s *DashboardService) List(ctx context.Context, wallet string) ([]*domain.Dashboard, error) {
	dashboards, err := s.dashboardRepo.GetByWallet(ctx, wallet)
	if err != nil {
		return nil, err
	}
	for _, d := range dashboards {
		s.withLinks(d)
	}
	return dashboards, nil
}

// Update rewrites a dashboard's name and amounts. The owning wallet is
// immutable: reassigning it would break ownership checks and payout routing.
func (s *DashboardService) Update(ctx context.Context, wallet, id string, data domain.CreateDashboardData) (*domain.Dashboard, error) {
	existing, err := s.dashboardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Wallet != wallet {
		return nil, domain.ErrForbidden
	}

	data.Wallet = existing.Wallet
	if err := data.Validate(); err != nil {
		return nil, err
	}

	existing.Name = data.Name
	existing.PayAmount = data.PayAmount
	existing.WithdrawAmount = data.WithdrawAmount

	updated, err := s.dashboardRepo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.publishEvent(updated.ID, websocket.DashboardUpdated(updated))
	return s.withLinks(updated), nil
}

// Delete removes a dashboard owned by the caller's wallet. Settlement events
// still in flight for it will be dropped by the listener.
func (s *DashboardService) Delete(ctx context.Context, wallet, id string) error {
	existing, err := s.dashboardRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Wallet != wallet {
		return domain.ErrForbidden
	}
	return s.dashboardRepo.Delete(ctx, id)
}

// CreateInvoice creates a tagged invoice against a dashboard outside the
// LNURL flow (direct API use)
func (s *DashboardService) CreateInvoice(ctx context.Context, id string, amountSats int64, memo string) (*domain.Invoice, error) {
	if amountSats <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	dashboard, err := s.dashboardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if memo == "" {
		memo = dashboard.Name
	}

	return s.engine.CreateInvoice(ctx, dashboard.Wallet, amountSats, memo, domain.InvoiceMeta{
		Tag:         domain.SettlementTag,
		DashboardID: dashboard.ID,
	})
}
