package domain

import (
	"context"
	"time"
)

// Dashboard is a shareable payment board owned by a single wallet.
// Total is mutated exclusively through DashboardRepository.AtomicAdjustTotal.
type Dashboard struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PayAmount      int64     `json:"payAmount"`      // sats, fixed amount per LNURL pay
	WithdrawAmount int64     `json:"withdrawAmount"` // sats, cap per LNURL withdrawal
	Wallet         string    `json:"wallet"`         // owning wallet, immutable after creation
	Total          int64     `json:"total"`          // sats, running balance
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Derived at read time, never persisted.
	LnurlPay      string `json:"lnurlPay,omitempty"`
	LnurlWithdraw string `json:"lnurlWithdraw,omitempty"`
}

// CreateDashboardData is the input for creating or updating a dashboard
type CreateDashboardData struct {
	Name           string `json:"name"`
	PayAmount      int64  `json:"payAmount"`
	WithdrawAmount int64  `json:"withdrawAmount"`
	Wallet         string `json:"wallet"`
}

// Validate checks the input against domain rules
func (d *CreateDashboardData) Validate() error {
	if d.Name == "" {
		return ErrNameRequired
	}
	if len(d.Name) > MaxDashboardNameLength {
		return ErrNameTooLong
	}
	if d.PayAmount <= 0 || d.WithdrawAmount <= 0 {
		return ErrInvalidAmount
	}
	if d.Wallet == "" {
		return ErrWalletRequired
	}
	return nil
}

type DashboardRepository interface {
	Create(ctx context.Context, dashboard *Dashboard) (*Dashboard, error)
	GetByID(ctx context.Context, id string) (*Dashboard, error)
	GetByWallet(ctx context.Context, wallet string) ([]*Dashboard, error)
	Update(ctx context.Context, dashboard *Dashboard) (*Dashboard, error)
	Delete(ctx context.Context, id string) error

	// AtomicAdjustTotal applies a signed delta to the running total in a
	// single store-side operation and returns the updated dashboard.
	// Concurrent adjustments for the same id must never lose an update.
	AtomicAdjustTotal(ctx context.Context, id string, delta int64) (*Dashboard, error)
}
