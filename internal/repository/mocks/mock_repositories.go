package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

type MockPodcastEpisodeRepository struct {
	MockContentRepository[model.PodcastEpisode]
}

func (m *MockPodcastEpisodeRepository) ListBySeries(ctx context.Context, seriesID string, pq repository.PageQuery) (*repository.PageResult[model.PodcastEpisode], error) {
	args := m.Called(ctx, seriesID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.PodcastEpisode]), args.Error(1)
}

type MockBlogPostRepository struct {
	MockContentRepository[model.BlogPost]
}

func (m *MockBlogPostRepository) ListFiltered(ctx context.Context, f repository.BlogFilter, pq repository.PageQuery) (*repository.PageResult[model.BlogPost], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.BlogPost]), args.Error(1)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Appointment], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Appointment]), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Setting), args.Error(1)
}

func (m *MockSettingRepository) List(ctx context.Context) ([]model.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Setting), args.Error(1)
}

func (m *MockSettingRepository) Upsert(ctx context.Context, key, value string) (*model.Setting, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Setting), args.Error(1)
}

func (m *MockSettingRepository) DeleteByKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockPaymentOrderRepository struct {
	mock.Mock
}

func (m *MockPaymentOrderRepository) Create(ctx context.Context, o *model.PaymentOrder) (*model.PaymentOrder, error) {
	args := m.Called(ctx, o)
	if rf, ok := args.Get(0).(func(context.Context, *model.PaymentOrder) *model.PaymentOrder); ok {
		return rf(ctx, o), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentOrder), args.Error(1)
}

func (m *MockPaymentOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentOrder), args.Error(1)
}

func (m *MockPaymentOrderRepository) SetGatewayOrderID(ctx context.Context, orderID, gatewayOrderID string) error {
	args := m.Called(ctx, orderID, gatewayOrderID)
	return args.Error(0)
}

func (m *MockPaymentOrderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}
