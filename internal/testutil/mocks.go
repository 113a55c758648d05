package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/satboard/satboard-backend/internal/domain"
)

// MockDashboardRepository is a mock implementation of domain.DashboardRepository.
// Safe for concurrent use so reconciliation races can be exercised in tests.
type MockDashboardRepository struct {
	mu         sync.Mutex
	Dashboards map[string]*domain.Dashboard

	GetByIDFn           func(ctx context.Context, id string) (*domain.Dashboard, error)
	AtomicAdjustTotalFn func(ctx context.Context, id string, delta int64) (*domain.Dashboard, error)
}

// NewMockDashboardRepository creates a new MockDashboardRepository
func NewMockDashboardRepository() *MockDashboardRepository {
	return &MockDashboardRepository{
		Dashboards: make(map[string]*domain.Dashboard),
	}
}

// AddDashboard adds a dashboard to the mock repository (helper for tests)
func (m *MockDashboardRepository) AddDashboard(d *domain.Dashboard) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dashboards[d.ID] = d
}

// Create inserts a new dashboard
func (m *MockDashboardRepository) Create(ctx context.Context, d *domain.Dashboard) (*domain.Dashboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	copied := *d
	m.Dashboards[d.ID] = &copied
	return d, nil
}

// GetByID retrieves a dashboard by ID
func (m *MockDashboardRepository) GetByID(ctx context.Context, id string) (*domain.Dashboard, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.Dashboards[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, domain.ErrDashboardNotFound
}

// GetByWallet retrieves all dashboards owned by a wallet
func (m *MockDashboardRepository) GetByWallet(ctx context.Context, wallet string) ([]*domain.Dashboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Dashboard
	for _, d := range m.Dashboards {
		if d.Wallet == wallet {
			copied := *d
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Update rewrites the mutable fields of a dashboard
func (m *MockDashboardRepository) Update(ctx context.Context, d *domain.Dashboard) (*domain.Dashboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Dashboards[d.ID]
	if !ok {
		return nil, domain.ErrDashboardNotFound
	}
	existing.Name = d.Name
	existing.PayAmount = d.PayAmount
	existing.WithdrawAmount = d.WithdrawAmount
	existing.UpdatedAt = time.Now()
	copied := *existing
	return &copied, nil
}

// Delete removes a dashboard
func (m *MockDashboardRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Dashboards[id]; !ok {
		return domain.ErrDashboardNotFound
	}
	delete(m.Dashboards, id)
	return nil
}

// AtomicAdjustTotal applies a signed delta under the repository lock,
// mirroring the store-side atomic increment of the real implementation
func (m *MockDashboardRepository) AtomicAdjustTotal(ctx context.Context, id string, delta int64) (*domain.Dashboard, error) {
	if m.AtomicAdjustTotalFn != nil {
		return m.AtomicAdjustTotalFn(ctx, id, delta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.Dashboards[id]
	if !ok {
		return nil, domain.ErrDashboardNotFound
	}
	d.Total += delta
	d.UpdatedAt = time.Now()
	copied := *d
	return &copied, nil
}

// MockInvoiceEngine is a mock implementation of domain.InvoiceEngine
type MockInvoiceEngine struct {
	mu sync.Mutex

	CreateInvoiceFn func(ctx context.Context, wallet string, amountSats int64, memo string, meta domain.InvoiceMeta) (*domain.Invoice, error)
	PayInvoiceFn    func(ctx context.Context, wallet string, bolt11 string, maxSats int64, meta domain.InvoiceMeta) (*domain.Payout, error)
	WalletInfoFn    func(ctx context.Context, apiKey string) (*domain.Wallet, error)

	// Recorded calls for assertions
	CreatedInvoices []CreateInvoiceCall
	Payouts         []PayInvoiceCall
}

// CreateInvoiceCall records one CreateInvoice invocation
type CreateInvoiceCall struct {
	Wallet     string
	AmountSats int64
	Memo       string
	Meta       domain.InvoiceMeta
}

// PayInvoiceCall records one PayInvoice invocation
type PayInvoiceCall struct {
	Wallet  string
	Bolt11  string
	MaxSats int64
	Meta    domain.InvoiceMeta
}

// NewMockInvoiceEngine creates a new MockInvoiceEngine
func NewMockInvoiceEngine() *MockInvoiceEngine {
	return &MockInvoiceEngine{}
}

// CreateInvoice records the call and returns a synthetic invoice
func (m *MockInvoiceEngine) CreateInvoice(ctx context.Context, wallet string, amountSats int64, memo string, meta domain.InvoiceMeta) (*domain.Invoice, error) {
	if m.CreateInvoiceFn != nil {
		return m.CreateInvoiceFn(ctx, wallet, amountSats, memo, meta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatedInvoices = append(m.CreatedInvoices, CreateInvoiceCall{Wallet: wallet, AmountSats: amountSats, Memo: memo, Meta: meta})
	n := len(m.CreatedInvoices)
	return &domain.Invoice{
		Bolt11:      fmt.Sprintf("lnbc%d", n),
		PaymentHash: fmt.Sprintf("hash-%d", n),
		CheckingID:  fmt.Sprintf("check-%d", n),
	}, nil
}

// PayInvoice records the call and returns a synthetic payout
func (m *MockInvoiceEngine) PayInvoice(ctx context.Context, wallet string, bolt11 string, maxSats int64, meta domain.InvoiceMeta) (*domain.Payout, error) {
	if m.PayInvoiceFn != nil {
		return m.PayInvoiceFn(ctx, wallet, bolt11, maxSats, meta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Payouts = append(m.Payouts, PayInvoiceCall{Wallet: wallet, Bolt11: bolt11, MaxSats: maxSats, Meta: meta})
	n := len(m.Payouts)
	return &domain.Payout{
		PaymentHash: fmt.Sprintf("hash-%d", n),
		CheckingID:  fmt.Sprintf("check-%d", n),
	}, nil
}

// WalletInfo resolves an API key to a wallet
func (m *MockInvoiceEngine) WalletInfo(ctx context.Context, apiKey string) (*domain.Wallet, error) {
	if m.WalletInfoFn != nil {
		return m.WalletInfoFn(ctx, apiKey)
	}
	return nil, domain.ErrWalletNotFound
}

// MockSettlementSource is a mock implementation of domain.SettlementSource
// backed by a plain channel
type MockSettlementSource struct {
	Events       chan domain.SettlementEvent
	SubscribeErr error
}

// NewMockSettlementSource creates a new MockSettlementSource
func NewMockSettlementSource() *MockSettlementSource {
	return &MockSettlementSource{
		Events: make(chan domain.SettlementEvent, 64),
	}
}

// Subscribe returns the mock's channel
func (m *MockSettlementSource) Subscribe(ctx context.Context, tag string) (<-chan domain.SettlementEvent, error) {
	if m.SubscribeErr != nil {
		return nil, m.SubscribeErr
	}
	return m.Events, nil
}

// Emit pushes an event onto the feed
func (m *MockSettlementSource) Emit(event domain.SettlementEvent) {
	m.Events <- event
}
