package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockDashboardRepo is a mock implementation of port.DashboardRepository.
type MockDashboardRepo struct {
	mock.Mock
}

func (m *MockDashboardRepo) InvoiceStats(ctx context.Context) (*domain.InvoiceStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceStats), args.Error(1)
}
