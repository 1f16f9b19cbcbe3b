package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wellnessapi/internal/model"
	"wellnessapi/internal/service"
)

// MockPaymentService is a testify mock for service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateOrder(ctx context.Context, in service.CreateOrderInput) (*service.CreateOrderResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateOrderResult), args.Error(1)
}

func (m *MockPaymentService) HandleWebhook(ctx context.Context, timestamp, signature string, body []byte) error {
	args := m.Called(ctx, timestamp, signature, body)
	return args.Error(0)
}

func (m *MockPaymentService) Status(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentOrder), args.Error(1)
}
