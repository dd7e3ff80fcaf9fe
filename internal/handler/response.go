package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"chainsight/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrEmptyDataset):
		return http.StatusBadRequest, "EMPTY_DATASET", "no data provided for analysis"
	case errors.Is(err, domain.ErrInvalidDataType):
		return http.StatusBadRequest, "INVALID_DATA_TYPE", "unrecognized data type"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: xlsx, csv"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrMissingAPIKey):
		return http.StatusInternalServerError, "MISSING_API_KEY", "completion backend is not configured"
	case errors.Is(err, domain.ErrAnalysisNotFound):
		return http.StatusNotFound, "ANALYSIS_NOT_FOUND", "analysis not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps an error to an HTTP response. Completion backend failures
// carry the upstream message and status through as a bad gateway so callers
// can distinguish them from local faults.
func HandleError(c *gin.Context, err error) {
	var provErr *domain.ProviderError
	if errors.As(err, &provErr) {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] provider error: %v", requestID, provErr)
		c.JSON(http.StatusBadGateway, APIResponse{
			Success: false,
			Error: &APIError{
				Code:    "PROVIDER_ERROR",
				Message: provErr.Message,
				Details: gin.H{
					"provider":   provErr.Provider,
					"type":       provErr.Type,
					"statusCode": provErr.StatusCode,
				},
			},
		})
		return
	}

	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
