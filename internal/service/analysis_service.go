package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"chainsight/internal/analysis"
	"chainsight/internal/domain"
	"chainsight/internal/port"
	"chainsight/internal/prompt"
	"chainsight/internal/stats"
)

// BatchInput carries the uploaded file set for a full analysis run.
type BatchInput struct {
	Location string               `json:"location,omitempty"`
	Files    []domain.FilePayload `json:"files"`
}

// BatchOutput holds per-type results plus the combined run under "all".
// Errors accumulates per-request failures without aborting the batch.
type BatchOutput struct {
	Results map[string]*domain.AnalysisResult `json:"results"`
	Errors  []string                          `json:"errors,omitempty"`
}

// AnalysisService runs the prompt-construction and response-parsing
// pipeline against the completion backend.
type AnalysisService interface {
	Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error)
	AnalyzeBatch(ctx context.Context, input BatchInput) (*BatchOutput, error)
	Ping(ctx context.Context) (string, error)
	History(ctx context.Context, limit int) ([]domain.AnalysisRun, error)
}

type analysisService struct {
	provider port.CompletionProvider
	runRepo  port.AnalysisRunRepository
	mode     domain.AnalyzerMode
}

// NewAnalysisService creates an AnalysisService. The run repository records
// history best-effort and may be nil in tests.
func NewAnalysisService(provider port.CompletionProvider, runRepo port.AnalysisRunRepository, mode domain.AnalyzerMode) AnalysisService {
	return &analysisService{
		provider: provider,
		runRepo:  runRepo,
		mode:     mode,
	}
}

// Analyze runs one request through the full pipeline: stats, prompt,
// completion call, parse. The completion call is the sole fallible boundary;
// its error is surfaced verbatim and not retried.
func (s *analysisService) Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDataType, req.Type)
	}
	if req.RecordCount() == 0 {
		return nil, domain.ErrEmptyDataset
	}

	block := stats.Compute(req)
	userPrompt := prompt.Build(req, block)
	system := prompt.System(s.mode)

	text, err := s.provider.Complete(ctx, system, userPrompt)
	if err != nil {
		return nil, err
	}

	result := analysis.Parse(text, req.Type)
	s.recordRun(ctx, req, result)
	return result, nil
}

// AnalyzeBatch fans out one combined request plus one request per detected
// type, sequentially. Failures are accumulated; remaining requests still
// run (partial-results policy).
func (s *analysisService) AnalyzeBatch(ctx context.Context, input BatchInput) (*BatchOutput, error) {
	out := &BatchOutput{Results: map[string]*domain.AnalysisResult{}}

	combined, err := s.Analyze(ctx, &domain.AnalysisRequest{
		Type:     domain.DataTypeCombined,
		Location: input.Location,
		Files:    input.Files,
	})
	if err != nil {
		log.Printf("service.AnalyzeBatch: combined analysis failed: %v", err)
		out.Errors = append(out.Errors, fmt.Sprintf("combined: %v", err))
	} else {
		out.Results["all"] = combined
	}

	for _, group := range groupByType(input.Files) {
		result, err := s.Analyze(ctx, &domain.AnalysisRequest{
			Type:     group.dataType,
			Location: input.Location,
			Data:     group.rows,
		})
		if err != nil {
			log.Printf("service.AnalyzeBatch: %s analysis failed: %v", group.dataType, err)
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", group.dataType, err))
			continue
		}
		out.Results[string(group.dataType)] = result
	}

	return out, nil
}

func (s *analysisService) Ping(ctx context.Context) (string, error) {
	return s.provider.Ping(ctx)
}

func (s *analysisService) History(ctx context.Context, limit int) ([]domain.AnalysisRun, error) {
	if s.runRepo == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.runRepo.ListRecent(ctx, limit)
}

// recordRun persists history best-effort; a storage failure never fails the
// analysis itself.
func (s *analysisService) recordRun(ctx context.Context, req *domain.AnalysisRequest, result *domain.AnalysisResult) {
	if s.runRepo == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("service.recordRun: marshaling result: %v", err)
		return
	}
	run := &domain.AnalysisRun{
		ID:          uuid.New(),
		DataType:    req.Type,
		Location:    req.Location,
		RecordCount: req.RecordCount(),
		Model:       s.provider.Model(),
		Result:      payload,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		log.Printf("service.recordRun: persisting run: %v", err)
	}
}

// typeGroup is the flattened rows of all files sharing one detected type.
type typeGroup struct {
	dataType domain.DataType
	rows     domain.RowSet
}

// groupByType flattens files into per-type row sets, preserving first-seen
// type order. Unknown-typed files form a group like any other; the prompt
// builder gives that group the general template.
func groupByType(files []domain.FilePayload) []typeGroup {
	index := map[domain.DataType]int{}
	var groups []typeGroup
	for _, f := range files {
		i, ok := index[f.Type]
		if !ok {
			i = len(groups)
			index[f.Type] = i
			groups = append(groups, typeGroup{dataType: f.Type})
		}
		groups[i].rows = append(groups[i].rows, f.Data...)
	}
	return groups
}
