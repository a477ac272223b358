package service

import (
	"context"

	"gstbill/internal/domain"
	"gstbill/internal/ledger"
	"gstbill/internal/port"
)

// DashboardService defines the landing-page statistics contract.
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

type dashboardService struct {
	dashboard port.DashboardRepository
	sales     port.SaleRepository
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(dashboard port.DashboardRepository, sales port.SaleRepository) DashboardService {
	return &dashboardService{dashboard: dashboard, sales: sales}
}

func (s *dashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	invoices, err := s.dashboard.InvoiceStats(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.List(ctx, domain.SaleFilter{})
	if err != nil {
		return nil, err
	}
	return &domain.DashboardStats{
		InvoiceStats: *invoices,
		Sales:        ledger.Summarize(sales),
	}, nil
}
