package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/satboard/satboard-backend/internal/domain"
)

// k1Namespace is the UUIDv5 namespace for withdraw challenges. The challenge
// is derived from the dashboard id alone, so repeated issuance yields the
// identical k1. See DESIGN.md for the reuse implications of that choice.
var k1Namespace = uuid.MustParse("8f9a2b64-31cd-4cf8-95b1-d7348c2e8e1b")

// LnurlService implements the LNURL pay (LUD-06) and withdraw (LUD-03)
// protocol steps against the dashboard store and the invoice engine.
type LnurlService struct {
	dashboardRepo domain.DashboardRepository
	engine        domain.InvoiceEngine
}

// NewLnurlService creates a new LnurlService
func NewLnurlService(dashboardRepo domain.DashboardRepository, engine domain.InvoiceEngine) *LnurlService {
	return &LnurlService{dashboardRepo: dashboardRepo, engine: engine}
}

// GetDashboard loads the dashboard an LNURL step refers to
func (s *LnurlService) GetDashboard(ctx context.Context, id string) (*domain.Dashboard, error) {
	return s.dashboardRepo.GetByID(ctx, id)
}

// PayMetadata builds the LUD-06 metadata string for a dashboard
func PayMetadata(name string) string {
	return fmt.Sprintf(`[["text/plain", "%s"]]`, name)
}

// CreatePayInvoice handles the LUD-06 callback: it validates the requested
// amount against the advertised fixed range and creates a tagged invoice.
// amountMsat must equal PayAmount*1000 exactly; the advertised range is a
// single point and the bound is enforced here as well.
func (s *LnurlService) CreatePayInvoice(ctx context.Context, id string, amountMsat int64) (*domain.Invoice, *domain.Dashboard, error) {
	dashboard, err := s.dashboardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if amountMsat != dashboard.PayAmount*1000 {
		return nil, nil, domain.ErrAmountOutOfBounds
	}

	invoice, err := s.engine.CreateInvoice(ctx, dashboard.Wallet, amountMsat/1000, dashboard.Name, domain.InvoiceMeta{
		Tag:         domain.SettlementTag,
		DashboardID: dashboard.ID,
	})
	if err != nil {
		return nil, nil, err
	}

	return invoice, dashboard, nil
}

// WithdrawK1 computes the withdraw challenge for a dashboard. Deterministic:
// the same dashboard always yields the same k1.
func (s *LnurlService) WithdrawK1(dashboardID string) string {
	return uuid.NewSHA1(k1Namespace, []byte(dashboardID)).String()
}

// Withdraw handles the LUD-03 callback: it verifies the challenge and pays
// the submitted invoice from the dashboard's wallet, capped at the
// dashboard's withdraw amount.
func (s *LnurlService) Withdraw(ctx context.Context, id, pr, k1 string) (*domain.Payout, error) {
	if k1 == "" {
		return nil, domain.ErrMissingK1
	}
	if pr == "" {
		return nil, domain.ErrMissingInvoice
	}

	dashboard, err := s.dashboardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if k1 != s.WithdrawK1(dashboard.ID) {
		return nil, domain.ErrWrongK1
	}

	payout, err := s.engine.PayInvoice(ctx, dashboard.Wallet, pr, dashboard.WithdrawAmount, domain.InvoiceMeta{
		Tag:          domain.SettlementTag,
		DashboardID:  dashboard.ID,
		IsWithdrawal: true,
	})
	if err != nil {
		return nil, err
	}

	return payout, nil
}
