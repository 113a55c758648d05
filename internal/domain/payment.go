package domain

import "context"

// SettlementTag marks invoices and payouts created by this service so the
// settlement listener can route their events back to a dashboard.
const SettlementTag = "satboard"

// SettlementEvent is a payment-settled notification from the funding node.
// Consumed read-only; amounts are sats, fees are millisats.
type SettlementEvent struct {
	Tag          string `json:"tag"`
	DashboardID  string `json:"dashboardId"`
	AmountSats   int64  `json:"amount"`
	FeeMsat      int64  `json:"fee"`
	CheckingID   string `json:"checking_id"`
	IsWithdrawal bool   `json:"isWithdrawal"`
}

// InvoiceMeta is attached to invoices and payouts so the eventual settlement
// event carries enough context to reconcile.
type InvoiceMeta struct {
	Tag          string `json:"tag"`
	DashboardID  string `json:"dashboardId"`
	IsWithdrawal bool   `json:"isWithdrawal,omitempty"`
}

// Invoice is a bolt11 invoice created by the funding node
type Invoice struct {
	Bolt11      string `json:"bolt11"`
	PaymentHash string `json:"paymentHash"`
	CheckingID  string `json:"checkingId"`
}

// Payout is the result of paying a bolt11 invoice
type Payout struct {
	PaymentHash string `json:"paymentHash"`
	FeeMsat     int64  `json:"fee"`
	CheckingID  string `json:"checkingId"`
}

// Wallet describes a wallet at the funding node, resolved from an API key
type Wallet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BalanceMsat int64  `json:"balance"`
}

// InvoiceEngine creates invoices and executes payouts against a wallet held
// by the external funding node.
type InvoiceEngine interface {
	CreateInvoice(ctx context.Context, wallet string, amountSats int64, memo string, meta InvoiceMeta) (*Invoice, error)
	PayInvoice(ctx context.Context, wallet string, bolt11 string, maxSats int64, meta InvoiceMeta) (*Payout, error)
	WalletInfo(ctx context.Context, apiKey string) (*Wallet, error)
}

// SettlementSource is a tag-filtered feed of settlement events. A
// subscription is infinite and starts from "now"; the returned channel is
// closed only when ctx is cancelled.
type SettlementSource interface {
	Subscribe(ctx context.Context, tag string) (<-chan SettlementEvent, error)
}
