package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"chainsight/internal/domain"
	"chainsight/internal/port"
)

type analysisRunRepo struct {
	db *sqlx.DB
}

// NewAnalysisRunRepo creates a new PostgreSQL-backed AnalysisRunRepository.
func NewAnalysisRunRepo(db *sqlx.DB) port.AnalysisRunRepository {
	return &analysisRunRepo{db: db}
}

func (r *analysisRunRepo) Create(ctx context.Context, run *domain.AnalysisRun) error {
	const q = `
		INSERT INTO analysis_runs (id, data_type, location, record_count, model, result, created_at)
		VALUES (:id, :data_type, :location, :record_count, :model, :result, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, q, run); err != nil {
		return fmt.Errorf("inserting analysis run: %w", err)
	}
	return nil
}

func (r *analysisRunRepo) ListRecent(ctx context.Context, limit int) ([]domain.AnalysisRun, error) {
	const q = `
		SELECT id, data_type, location, record_count, model, result, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1`
	var runs []domain.AnalysisRun
	if err := r.db.SelectContext(ctx, &runs, q, limit); err != nil {
		return nil, fmt.Errorf("listing analysis runs: %w", err)
	}
	return runs, nil
}
