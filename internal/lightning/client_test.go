package lightning

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/satboard/satboard-backend/internal/domain"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, "", "svc-key", zerolog.Nop())
}

func TestCreateInvoice(t *testing.T) {
	var gotReq paymentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/payments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "svc-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(paymentResponse{
			PaymentRequest: "lnbc10u1...",
			PaymentHash:    "abc123",
			CheckingID:     "check-1",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	invoice, err := client.CreateInvoice(context.Background(), "wallet-1", 1000, "Coffee Fund", domain.InvoiceMeta{
		Tag:         domain.SettlementTag,
		DashboardID: "dash-1",
	})
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	if invoice.Bolt11 != "lnbc10u1..." || invoice.PaymentHash != "abc123" || invoice.CheckingID != "check-1" {
		t.Errorf("unexpected invoice: %+v", invoice)
	}
	if gotReq.Out {
		t.Error("invoice creation must be an incoming payment")
	}
	if gotReq.WalletID != "wallet-1" || gotReq.Amount != 1000 || gotReq.Memo != "Coffee Fund" {
		t.Errorf("unexpected request: %+v", gotReq)
	}
	if gotReq.Extra.Tag != domain.SettlementTag || gotReq.Extra.DashboardID != "dash-1" {
		t.Errorf("settlement meta not forwarded: %+v", gotReq.Extra)
	}
}

func TestCreateInvoice_NodeDetailSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "wallet does not exist"})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.CreateInvoice(context.Background(), "nope", 1000, "", domain.InvoiceMeta{})
	if err == nil {
		t.Fatal("expected error")
	}

	var engineErr *domain.EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected EngineError, got %T: %v", err, err)
	}
	if engineErr.Message != "wallet does not exist" {
		t.Errorf("node detail must be preferred, got %q", engineErr.Message)
	}
}

func TestPayInvoice(t *testing.T) {
	var gotReq paymentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(paymentResponse{
			PaymentHash: "def456",
			CheckingID:  "check-2",
			FeeMsat:     1500,
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	payout, err := client.PayInvoice(context.Background(), "wallet-1", "lnbc50u1...", 5000, domain.InvoiceMeta{
		Tag:          domain.SettlementTag,
		DashboardID:  "dash-1",
		IsWithdrawal: true,
	})
	if err != nil {
		t.Fatalf("PayInvoice failed: %v", err)
	}

	if payout.FeeMsat != 1500 || payout.CheckingID != "check-2" {
		t.Errorf("unexpected payout: %+v", payout)
	}
	if !gotReq.Out {
		t.Error("payout must be an outgoing payment")
	}
	if gotReq.Bolt11 != "lnbc50u1..." || gotReq.MaxSat != 5000 {
		t.Errorf("unexpected request: %+v", gotReq)
	}
	if !gotReq.Extra.IsWithdrawal {
		t.Error("withdrawal meta not forwarded")
	}
}

func TestPayInvoice_EngineFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"detail": "insufficient balance"})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.PayInvoice(context.Background(), "wallet-1", "lnbc50u1...", 5000, domain.InvoiceMeta{})

	var engineErr *domain.EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected EngineError, got %T: %v", err, err)
	}
	if engineErr.Message != "insufficient balance" {
		t.Errorf("unexpected message: %q", engineErr.Message)
	}
}

func TestWalletInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/wallet" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "user-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(walletResponse{ID: "wallet-1", Name: "main", BalanceMsat: 21000})
	}))
	defer srv.Close()

	client := newTestClient(srv)

	wallet, err := client.WalletInfo(context.Background(), "user-key")
	if err != nil {
		t.Fatalf("WalletInfo failed: %v", err)
	}
	if wallet.ID != "wallet-1" || wallet.Name != "main" || wallet.BalanceMsat != 21000 {
		t.Errorf("unexpected wallet: %+v", wallet)
	}

	// Wrong key maps to the domain sentinel
	if _, err := client.WalletInfo(context.Background(), "wrong-key"); !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestWirePayment_ToEvent(t *testing.T) {
	tests := []struct {
		name       string
		payment    wirePayment
		wantAmount int64
	}{
		{
			name:       "incoming msat amount",
			payment:    wirePayment{Amount: 1000000, FeeMsat: 0, CheckingID: "c1"},
			wantAmount: 1000,
		},
		{
			name:       "outgoing negative amount is normalized",
			payment:    wirePayment{Amount: -800000, FeeMsat: 1500, CheckingID: "c2"},
			wantAmount: 800,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.payment.Extra.Tag = domain.SettlementTag
			tt.payment.Extra.DashboardID = "dash-1"

			event := tt.payment.toEvent()
			if event.AmountSats != tt.wantAmount {
				t.Errorf("expected %d sats, got %d", tt.wantAmount, event.AmountSats)
			}
			if event.Tag != domain.SettlementTag || event.DashboardID != "dash-1" {
				t.Errorf("meta not carried: %+v", event)
			}
			if event.CheckingID != tt.payment.CheckingID {
				t.Errorf("checking id not carried")
			}
		})
	}
}
