package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chainsight/internal/domain"
	"chainsight/internal/service"
)

// MockDatasetService is a mock implementation of service.DatasetService.
type MockDatasetService struct {
	mock.Mock
}

func (m *MockDatasetService) Upload(ctx context.Context, input service.UploadInput) (*domain.Dataset, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}
