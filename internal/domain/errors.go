package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDataset        = errors.New("dataset contains no records")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidDataType     = errors.New("invalid data type")
	ErrMissingAPIKey       = errors.New("completion API key is not configured")
	ErrAnalysisNotFound    = errors.New("analysis run not found")
)

// ProviderError carries diagnostic context from a failed completion backend
// call. It is surfaced to the caller verbatim and never retried.
type ProviderError struct {
	Provider   string
	Type       string
	Message    string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error (status %d, type %s): %s", e.Provider, e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
