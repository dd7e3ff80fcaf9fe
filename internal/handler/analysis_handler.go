package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chainsight/internal/domain"
	"chainsight/internal/service"
)

// AnalysisHandler handles analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Analyze handles POST /api/v1/analysis. The request body is one analysis
// unit: a data type plus either rows or, for the combined type, files.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req domain.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}
	if req.Type == "" {
		req.Type = domain.DataTypeUnknown
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// AnalyzeBatch handles POST /api/v1/analysis/batch. Runs the combined
// analysis plus one analysis per detected type; partial failures are
// reported alongside the results that did succeed.
func (h *AnalysisHandler) AnalyzeBatch(c *gin.Context) {
	var input service.BatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}
	if len(input.Files) == 0 {
		RespondError(c, http.StatusBadRequest, "EMPTY_DATASET", "no files provided for analysis")
		return
	}

	out, err := h.analysisService.AnalyzeBatch(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}

// Ping handles GET /api/v1/analysis/ping. Issues a minimal completion
// request to verify backend connectivity and credentials.
func (h *AnalysisHandler) Ping(c *gin.Context) {
	text, err := h.analysisService.Ping(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": text})
}

// History handles GET /api/v1/analysis/history.
func (h *AnalysisHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.analysisService.History(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if runs == nil {
		runs = []domain.AnalysisRun{}
	}

	RespondOK(c, runs)
}
