package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type dashboardRepo struct {
	db *sqlx.DB
}

// NewDashboardRepo creates a new PostgreSQL-backed DashboardRepository.
func NewDashboardRepo(db *sqlx.DB) port.DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) InvoiceStats(ctx context.Context) (*domain.InvoiceStats, error) {
	var stats domain.InvoiceStats
	err := r.db.GetContext(ctx, &stats,
		`SELECT COUNT(*) AS total_invoices, COALESCE(SUM(grand_total), 0) AS total_revenue
		 FROM bills WHERE status = $1`, domain.BillStatusInvoice)
	if err != nil {
		return nil, fmt.Errorf("dashboardRepo.InvoiceStats: %w", err)
	}
	return &stats, nil
}
