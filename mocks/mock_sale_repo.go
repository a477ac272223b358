package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockSaleRepo is a mock implementation of port.SaleRepository.
type MockSaleRepo struct {
	mock.Mock
}

func (m *MockSaleRepo) CreateForBill(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	args := m.Called(ctx, sale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepo) ExistsForBill(ctx context.Context, billID uuid.UUID) (bool, error) {
	args := m.Called(ctx, billID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSaleRepo) List(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepo) AddPayment(ctx context.Context, payment *domain.Payment) (*domain.Sale, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepo) DeletePayment(ctx context.Context, saleID, paymentID uuid.UUID) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
