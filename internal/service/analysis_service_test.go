package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chainsight/internal/domain"
	"chainsight/internal/service"
	"chainsight/mocks"
)

func sampleRows() domain.RowSet {
	return domain.RowSet{
		{"PO #": "1001", "Vendor": "Apple", "Total Cost": "5000"},
		{"PO #": "1002", "Vendor": "Samsung", "Total Cost": "3200"},
	}
}

func TestAnalysisService_Analyze(t *testing.T) {
	provider := new(mocks.MockCompletionProvider)
	runRepo := new(mocks.MockAnalysisRunRepo)

	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("1. KEY INSIGHTS: Vendors deliver on time. 2. INVENTORY ANALYSIS: Stock is balanced.", nil)
	provider.On("Model").Return("claude-3-opus-20240229")
	runRepo.On("Create", mock.Anything, mock.MatchedBy(func(run *domain.AnalysisRun) bool {
		return run.DataType == domain.DataTypePurchaseOrders &&
			run.RecordCount == 2 &&
			run.Model == "claude-3-opus-20240229"
	})).Return(nil)

	svc := service.NewAnalysisService(provider, runRepo, domain.ModeDetailed)
	result, err := svc.Analyze(context.Background(), &domain.AnalysisRequest{
		Type: domain.DataTypePurchaseOrders,
		Data: sampleRows(),
	})

	require.NoError(t, err)
	assert.Equal(t, "Vendors deliver on time.", result.KeyInsights)
	assert.Equal(t, "Stock is balanced.", result.InventoryAnalysis)
	provider.AssertExpectations(t)
	runRepo.AssertExpectations(t)
}

func TestAnalysisService_Analyze_EmptyDataset(t *testing.T) {
	provider := new(mocks.MockCompletionProvider)
	svc := service.NewAnalysisService(provider, nil, domain.ModeDetailed)

	_, err := svc.Analyze(context.Background(), &domain.AnalysisRequest{
		Type: domain.DataTypeSalesData,
	})

	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
	provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisService_Analyze_InvalidType(t *testing.T) {
	provider := new(mocks.MockCompletionProvider)
	svc := service.NewAnalysisService(provider, nil, domain.ModeDetailed)

	_, err := svc.Analyze(context.Background(), &domain.AnalysisRequest{
		Type: domain.DataType("weather"),
		Data: sampleRows(),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidDataType)
}

func TestAnalysisService_Analyze_ProviderErrorSurfaced(t *testing.T) {
	provider := new(mocks.MockCompletionProvider)
	runRepo := new(mocks.MockAnalysisRunRepo)
	provErr := &domain.ProviderError{Provider: "anthropic", Type: "overloaded_error", Message: "overloaded", StatusCode: 529}
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", provErr)

	svc := service.NewAnalysisService(provider, runRepo, domain.ModeDetailed)
	_, err := svc.Analyze(context.Background(), &domain.AnalysisRequest{
		Type: domain.DataTypeInventory,
		Data: sampleRows(),
	})

	var got *domain.ProviderError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 529, got.StatusCode)
	runRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalysisService_Analyze_PersistFailureDoesNotFailAnalysis(t *testing.T) {
	provider := new(mocks.MockCompletionProvider)
	runRepo := new(mocks.MockAnalysisRunRepo)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("Key Insights: fine.", nil)
	provider.On("Model").Return("claude-3-opus-20240229")
	runRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	svc := service.NewAnalysisService(provider, runRepo, domain.ModeDetailed)
	result, err := svc.Analyze(context.Background(), &domain.AnalysisRequest{
		Type: domain.DataTypeSalesData,
		Data: sampleRows(),
	})

	require.NoError(t, err)
	assert.Equal(t, "fine.", result.KeyInsights)
}

func TestAnalysisService_AnalyzeBatch(t *testing.T) {
	provider := new(mocks.MockCompletionProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("1. KEY INSIGHTS: Looks healthy.", nil)
	provider.On("Model").Return("claude-3-opus-20240229")

	svc := service.NewAnalysisService(provider, nil, domain.ModeDetailed)
	out, err := svc.AnalyzeBatch(context.Background(), service.BatchInput{
		Files: []domain.FilePayload{
			{FileName: "po.xlsx", Type: domain.DataTypePurchaseOrders, Data: sampleRows()},
			{FileName: "sales.csv", Type: domain.DataTypeSalesData, Data: sampleRows()},
			{FileName: "po2.xlsx", Type: domain.DataTypePurchaseOrders, Data: sampleRows()},
		},
	})

	require.NoError(t, err)
	assert.Empty(t, out.Errors)
	// Combined plus one result per detected type, not per file.
	require.Len(t, out.Results, 3)
	assert.Contains(t, out.Results, "all")
	assert.Contains(t, out.Results, "purchase_orders")
	assert.Contains(t, out.Results, "sales_data")
	provider.AssertNumberOfCalls(t, "Complete", 3)
}

func TestAnalysisService_AnalyzeBatch_PartialFailure(t *testing.T) {
	provider := new(mocks.MockCompletionProvider)
	// Combined succeeds, the first per-type request fails, the second still runs.
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("1. KEY INSIGHTS: Combined view.", nil).Once()
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("rate limited")).Once()
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("1. KEY INSIGHTS: Sales view.", nil).Once()
	provider.On("Model").Return("claude-3-opus-20240229")

	svc := service.NewAnalysisService(provider, nil, domain.ModeDetailed)
	out, err := svc.AnalyzeBatch(context.Background(), service.BatchInput{
		Files: []domain.FilePayload{
			{FileName: "po.xlsx", Type: domain.DataTypePurchaseOrders, Data: sampleRows()},
			{FileName: "sales.csv", Type: domain.DataTypeSalesData, Data: sampleRows()},
		},
	})

	require.NoError(t, err)
	assert.Contains(t, out.Results, "all")
	assert.Contains(t, out.Results, "sales_data")
	assert.NotContains(t, out.Results, "purchase_orders")
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "purchase_orders")
	provider.AssertNumberOfCalls(t, "Complete", 3)
}

func TestAnalysisService_AnalyzeBatch_CombinedFailureDoesNotAbort(t *testing.T) {
	provider := new(mocks.MockCompletionProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("timeout")).Once()
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("Key Insights: per-type still ran.", nil).Once()
	provider.On("Model").Return("claude-3-opus-20240229")

	svc := service.NewAnalysisService(provider, nil, domain.ModeDetailed)
	out, err := svc.AnalyzeBatch(context.Background(), service.BatchInput{
		Files: []domain.FilePayload{
			{FileName: "inv.xlsx", Type: domain.DataTypeInventory, Data: sampleRows()},
		},
	})

	require.NoError(t, err)
	assert.NotContains(t, out.Results, "all")
	assert.Contains(t, out.Results, "inventory")
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "combined")
}

func TestAnalysisService_Ping(t *testing.T) {
	provider := new(mocks.MockCompletionProvider)
	provider.On("Ping", mock.Anything).Return("API test successful", nil)

	svc := service.NewAnalysisService(provider, nil, domain.ModeDetailed)
	text, err := svc.Ping(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "API test successful", text)
}

func TestAnalysisService_History_LimitNormalized(t *testing.T) {
	runRepo := new(mocks.MockAnalysisRunRepo)
	runRepo.On("ListRecent", mock.Anything, 20).Return([]domain.AnalysisRun{}, nil)

	svc := service.NewAnalysisService(new(mocks.MockCompletionProvider), runRepo, domain.ModeDetailed)
	_, err := svc.History(context.Background(), 0)

	require.NoError(t, err)
	runRepo.AssertExpectations(t)
}
