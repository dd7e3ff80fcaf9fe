package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chainsight/internal/domain"
)

// MockAnalysisRunRepo is a mock implementation of port.AnalysisRunRepository.
type MockAnalysisRunRepo struct {
	mock.Mock
}

func (m *MockAnalysisRunRepo) Create(ctx context.Context, run *domain.AnalysisRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockAnalysisRunRepo) ListRecent(ctx context.Context, limit int) ([]domain.AnalysisRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalysisRun), args.Error(1)
}
