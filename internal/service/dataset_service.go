package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"chainsight/internal/classify"
	"chainsight/internal/config"
	"chainsight/internal/domain"
	"chainsight/internal/ingest"
	"chainsight/internal/port"
)

// UploadInput describes one incoming spreadsheet upload.
type UploadInput struct {
	FileName string
	Size     int64
	File     io.Reader
	// TypeOverride forces the classification when non-empty. Once overridden
	// the type is never re-inferred.
	TypeOverride domain.DataType
}

// DatasetService validates, decodes and classifies uploaded spreadsheets.
type DatasetService interface {
	Upload(ctx context.Context, input UploadInput) (*domain.Dataset, error)
}

type datasetService struct {
	storage   port.ObjectStorage
	uploadCfg config.UploadConfig
	s3Cfg     config.S3Config
}

// NewDatasetService creates a DatasetService. storage may be nil when
// archival is disabled.
func NewDatasetService(storage port.ObjectStorage, uploadCfg config.UploadConfig, s3Cfg config.S3Config) DatasetService {
	return &datasetService{
		storage:   storage,
		uploadCfg: uploadCfg,
		s3Cfg:     s3Cfg,
	}
}

// Upload validates the file, decodes its rows and classifies the dataset.
// The raw payload is archived best-effort when object storage is configured.
func (s *datasetService) Upload(ctx context.Context, input UploadInput) (*domain.Dataset, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.FileName)), ".")
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, ext)
	}

	maxBytes := s.uploadCfg.MaxFileSizeMB * 1024 * 1024
	if maxBytes > 0 && input.Size > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %dMB limit",
			domain.ErrFileTooLarge, input.Size, s.uploadCfg.MaxFileSizeMB)
	}

	var reader io.Reader = input.File
	if maxBytes > 0 {
		reader = io.LimitReader(input.File, maxBytes+1)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if maxBytes > 0 && int64(len(raw)) > maxBytes {
		return nil, fmt.Errorf("%w: payload exceeds %dMB limit",
			domain.ErrFileTooLarge, s.uploadCfg.MaxFileSizeMB)
	}

	rows, err := ingest.Decode(fileType, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	dataType := input.TypeOverride
	if dataType == "" {
		dataType = classify.DetectFromRows(rows)
	} else if !dataType.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDataType, dataType)
	}

	dataset := &domain.Dataset{
		ID:       uuid.New(),
		FileName: input.FileName,
		Type:     dataType,
		Rows:     rows,
	}
	s.archive(ctx, dataset, raw, fileType)
	return dataset, nil
}

// archive stores the raw payload best-effort; archival failure never fails
// the upload.
func (s *datasetService) archive(ctx context.Context, dataset *domain.Dataset, raw []byte, fileType domain.FileType) {
	if s.storage == nil || !s.s3Cfg.Enabled() {
		return
	}
	key := fmt.Sprintf("uploads/%s/%s", dataset.ID, dataset.FileName)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(raw),
		ContentType: contentTypeFor(fileType),
	})
	if err != nil {
		log.Printf("service.archive: storing %s: %v", key, err)
	}
}

func contentTypeFor(fileType domain.FileType) string {
	switch fileType {
	case domain.FileTypeXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case domain.FileTypeCSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
