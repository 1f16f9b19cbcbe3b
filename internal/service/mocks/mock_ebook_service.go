package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wellnessapi/internal/model"
	"wellnessapi/internal/service"
)

// MockEbookService is a testify mock for service.EbookService.
type MockEbookService struct {
	mock.Mock
}

func (m *MockEbookService) Create(ctx context.Context, in service.CreateEbookInput) (*model.Ebook, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ebook), args.Error(1)
}

func (m *MockEbookService) List(ctx context.Context, limit, offset int) (*service.ListResult[model.Ebook], error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Ebook]), args.Error(1)
}

func (m *MockEbookService) Get(ctx context.Context, id string) (*model.Ebook, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ebook), args.Error(1)
}

func (m *MockEbookService) GetBySlug(ctx context.Context, slug string) (*model.Ebook, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ebook), args.Error(1)
}

func (m *MockEbookService) Update(ctx context.Context, id string, in service.UpdateEbookInput) (*model.Ebook, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ebook), args.Error(1)
}

func (m *MockEbookService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEbookService) DownloadPDF(ctx context.Context, id string) (*service.PDFDownload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PDFDownload), args.Error(1)
}
