package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wellnessapi/internal/payment"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, req payment.CreateOrderRequest) (*payment.CreateOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CreateOrderResponse), args.Error(1)
}

func (m *MockGateway) VerifySignature(timestamp string, body []byte, signature string) bool {
	args := m.Called(timestamp, body, signature)
	return args.Bool(0)
}
