package port

import (
	"context"

	"chainsight/internal/domain"
)

// AnalysisRunRepository persists analysis run history.
type AnalysisRunRepository interface {
	Create(ctx context.Context, run *domain.AnalysisRun) error
	ListRecent(ctx context.Context, limit int) ([]domain.AnalysisRun, error)
}
