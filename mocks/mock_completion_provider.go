package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCompletionProvider is a mock implementation of port.CompletionProvider.
type MockCompletionProvider struct {
	mock.Mock
}

func (m *MockCompletionProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionProvider) Ping(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionProvider) Model() string {
	args := m.Called()
	return args.String(0)
}
