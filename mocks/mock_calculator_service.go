package mocks

import (
	"github.com/stretchr/testify/mock"

	"gstbill/internal/service"
)

// MockCalculatorService is a mock implementation of service.CalculatorService.
type MockCalculatorService struct {
	mock.Mock
}

func (m *MockCalculatorService) Preview(input service.PreviewInput) (*service.PreviewResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PreviewResult), args.Error(1)
}

func (m *MockCalculatorService) AmountInWords(amount string) (string, error) {
	args := m.Called(amount)
	return args.String(0), args.Error(1)
}
