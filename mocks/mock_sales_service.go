package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// MockSalesService is a mock implementation of service.SalesService.
type MockSalesService struct {
	mock.Mock
}

func (m *MockSalesService) List(ctx context.Context, input service.SalesFilterInput) ([]domain.Sale, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSalesService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSalesService) AddPayment(ctx context.Context, saleID uuid.UUID, input service.PaymentInput) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSalesService) DeletePayment(ctx context.Context, saleID, paymentID uuid.UUID) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSalesService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesService) Stats(ctx context.Context) (*domain.SalesStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesStats), args.Error(1)
}
