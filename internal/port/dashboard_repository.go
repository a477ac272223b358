package port

import (
	"context"

	"gstbill/internal/domain"
)

// DashboardRepository provides aggregate queries for the landing page.
type DashboardRepository interface {
	InvoiceStats(ctx context.Context) (*domain.InvoiceStats, error)
}
