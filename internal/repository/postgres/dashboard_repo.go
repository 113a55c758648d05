package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/satboard/satboard-backend/internal/domain"
)

// DashboardRepository implements domain.DashboardRepository using PostgreSQL
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

const dashboardColumns = `id, name, pay_amount, withdraw_amount, wallet, total, created_at, updated_at`

func scanDashboard(row pgx.Row) (*domain.Dashboard, error) {
	var d domain.Dashboard
	err := row.Scan(&d.ID, &d.Name, &d.PayAmount, &d.WithdrawAmount, &d.Wallet, &d.Total, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDashboardNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Create inserts a new dashboard
func (r *DashboardRepository) Create(ctx context.Context, dashboard *domain.Dashboard) (*domain.Dashboard, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO dashboards (id, name, pay_amount, withdraw_amount, wallet, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+dashboardColumns,
		dashboard.ID, dashboard.Name, dashboard.PayAmount, dashboard.WithdrawAmount, dashboard.Wallet, dashboard.Total,
	)
	return scanDashboard(row)
}

// GetByID retrieves a dashboard by its ID
func (r *DashboardRepository) GetByID(ctx context.Context, id string) (*domain.Dashboard, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+dashboardColumns+` FROM dashboards WHERE id = $1`, id)
	return scanDashboard(row)
}

// GetByWallet retrieves all dashboards owned by a wallet
func (r *DashboardRepository) GetByWallet(ctx context.Context, wallet string) ([]*domain.Dashboard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+dashboardColumns+` FROM dashboards WHERE wallet = $1 ORDER BY created_at`, wallet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Dashboard
	for rows.Next() {
		d, err := scanDashboard(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// Update rewrites the mutable fields of a dashboard. The wallet and the
// running total are not touched here; the total belongs to AtomicAdjustTotal.
func (r *DashboardRepository) Update(ctx context.Context, dashboard *domain.Dashboard) (*domain.Dashboard, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE dashboards
		SET name = $2, pay_amount = $3, withdraw_amount = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+dashboardColumns,
		dashboard.ID, dashboard.Name, dashboard.PayAmount, dashboard.WithdrawAmount,
	)
	return scanDashboard(row)
}

// Delete removes a dashboard
func (r *DashboardRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dashboards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDashboardNotFound
	}
	return nil
}

// AtomicAdjustTotal applies a signed delta to the running total in a single
// statement. The read-modify-write happens inside the database, so two
// settlements racing for the same dashboard cannot lose an update.
func (r *DashboardRepository) AtomicAdjustTotal(ctx context.Context, id string, delta int64) (*domain.Dashboard, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE dashboards
		SET total = total + $2, updated_at = now()
		WHERE id = $1
		RETURNING `+dashboardColumns,
		id, delta,
	)
	return scanDashboard(row)
}
