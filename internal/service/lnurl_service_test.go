package service

import (
	"context"
	"errors"
	"testing"

	"github.com/satboard/satboard-backend/internal/domain"
	"github.com/satboard/satboard-backend/internal/testutil"
)

func seedDashboard(repo *testutil.MockDashboardRepository) *domain.Dashboard {
	d := &domain.Dashboard{
		ID:             "dash-1",
		Name:           "Coffee Fund",
		PayAmount:      1000,
		WithdrawAmount: 5000,
		Wallet:         "wallet-1",
	}
	repo.AddDashboard(d)
	return d
}

func TestLnurlService_CreatePayInvoice(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	seedDashboard(repo)
	engine := testutil.NewMockInvoiceEngine()

	svc := NewLnurlService(repo, engine)

	invoice, dashboard, err := svc.CreatePayInvoice(context.Background(), "dash-1", 1000000)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if invoice.Bolt11 == "" {
		t.Error("expected a bolt11 invoice")
	}
	if dashboard.Name != "Coffee Fund" {
		t.Errorf("expected dashboard name Coffee Fund, got %s", dashboard.Name)
	}

	if len(engine.CreatedInvoices) != 1 {
		t.Fatalf("expected 1 invoice created, got %d", len(engine.CreatedInvoices))
	}
	call := engine.CreatedInvoices[0]
	if call.AmountSats != 1000 {
		t.Errorf("expected 1000 sats, got %d", call.AmountSats)
	}
	if call.Memo != "Coffee Fund" {
		t.Errorf("expected memo Coffee Fund, got %s", call.Memo)
	}
	if call.Meta.Tag != domain.SettlementTag || call.Meta.DashboardID != "dash-1" {
		t.Errorf("invoice not tagged for reconciliation: %+v", call.Meta)
	}
	if call.Meta.IsWithdrawal {
		t.Error("pay invoice must not carry the withdrawal marker")
	}
}

// The advertised sendable range is a single point; the callback enforces it
// instead of trusting the client.
func TestLnurlService_CreatePayInvoice_AmountMismatch(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	seedDashboard(repo)
	engine := testutil.NewMockInvoiceEngine()

	svc := NewLnurlService(repo, engine)

	for _, amountMsat := range []int64{999999, 1000001, 1, 0, -1000000, 2000000} {
		_, _, err := svc.CreatePayInvoice(context.Background(), "dash-1", amountMsat)
		if !errors.Is(err, domain.ErrAmountOutOfBounds) {
			t.Errorf("amount %d: expected ErrAmountOutOfBounds, got %v", amountMsat, err)
		}
	}
	if len(engine.CreatedInvoices) != 0 {
		t.Errorf("expected no invoices created, got %d", len(engine.CreatedInvoices))
	}
}

func TestLnurlService_CreatePayInvoice_NotFound(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	engine := testutil.NewMockInvoiceEngine()
	svc := NewLnurlService(repo, engine)

	_, _, err := svc.CreatePayInvoice(context.Background(), "missing", 1000000)
	if !errors.Is(err, domain.ErrDashboardNotFound) {
		t.Errorf("expected ErrDashboardNotFound, got %v", err)
	}
}

func TestLnurlService_CreatePayInvoice_EngineFailure(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	seedDashboard(repo)
	engine := testutil.NewMockInvoiceEngine()
	engine.CreateInvoiceFn = func(ctx context.Context, wallet string, amountSats int64, memo string, meta domain.InvoiceMeta) (*domain.Invoice, error) {
		return nil, &domain.EngineError{Op: "create_invoice", Message: "no route"}
	}
	svc := NewLnurlService(repo, engine)

	_, _, err := svc.CreatePayInvoice(context.Background(), "dash-1", 1000000)
	var engineErr *domain.EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected EngineError, got %v", err)
	}
}

func TestLnurlService_WithdrawK1_Deterministic(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	engine := testutil.NewMockInvoiceEngine()
	svc := NewLnurlService(repo, engine)

	k1a := svc.WithdrawK1("dash-1")
	k1b := svc.WithdrawK1("dash-1")
	if k1a == "" {
		t.Fatal("expected non-empty k1")
	}
	if k1a != k1b {
		t.Errorf("k1 must be stable for the same dashboard: %s != %s", k1a, k1b)
	}

	if other := svc.WithdrawK1("dash-2"); other == k1a {
		t.Error("different dashboards must yield different challenges")
	}
}

func TestLnurlService_Withdraw(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	seedDashboard(repo)
	engine := testutil.NewMockInvoiceEngine()
	svc := NewLnurlService(repo, engine)

	k1 := svc.WithdrawK1("dash-1")
	payout, err := svc.Withdraw(context.Background(), "dash-1", "lnbc500n1...", k1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if payout == nil {
		t.Fatal("expected payout")
	}

	if len(engine.Payouts) != 1 {
		t.Fatalf("expected 1 payout, got %d", len(engine.Payouts))
	}
	call := engine.Payouts[0]
	if call.MaxSats != 5000 {
		t.Errorf("payout must be capped at the withdraw amount, got %d", call.MaxSats)
	}
	if call.Wallet != "wallet-1" {
		t.Errorf("payout must come from the owning wallet, got %s", call.Wallet)
	}
	if !call.Meta.IsWithdrawal || call.Meta.Tag != domain.SettlementTag || call.Meta.DashboardID != "dash-1" {
		t.Errorf("payout not tagged as withdrawal for reconciliation: %+v", call.Meta)
	}
}

func TestLnurlService_Withdraw_WrongK1(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	seedDashboard(repo)
	engine := testutil.NewMockInvoiceEngine()
	svc := NewLnurlService(repo, engine)

	_, err := svc.Withdraw(context.Background(), "dash-1", "lnbc500n1...", "not-the-challenge")
	if !errors.Is(err, domain.ErrWrongK1) {
		t.Errorf("expected ErrWrongK1, got %v", err)
	}
	if len(engine.Payouts) != 0 {
		t.Errorf("no payout may happen on a failed challenge, got %d", len(engine.Payouts))
	}
}

func TestLnurlService_Withdraw_MissingParams(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	seedDashboard(repo)
	engine := testutil.NewMockInvoiceEngine()
	svc := NewLnurlService(repo, engine)

	if _, err := svc.Withdraw(context.Background(), "dash-1", "lnbc500n1...", ""); !errors.Is(err, domain.ErrMissingK1) {
		t.Errorf("expected ErrMissingK1, got %v", err)
	}
	if _, err := svc.Withdraw(context.Background(), "dash-1", "", "some-k1"); !errors.Is(err, domain.ErrMissingInvoice) {
		t.Errorf("expected ErrMissingInvoice, got %v", err)
	}
}

func TestLnurlService_Withdraw_NotFound(t *testing.T) {
	repo := testutil.NewMockDashboardRepository()
	engine := testutil.NewMockInvoiceEngine()
	svc := NewLnurlService(repo, engine)

	_, err := svc.Withdraw(context.Background(), "missing", "lnbc500n1...", "some-k1")
	if !errors.Is(err, domain.ErrDashboardNotFound) {
		t.Errorf("expected ErrDashboardNotFound, got %v", err)
	}
}
