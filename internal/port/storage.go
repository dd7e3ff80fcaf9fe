package port

import (
	"context"
	"io"
)

// UploadInput carries one object to store.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// UploadOutput describes the stored object.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the archival store for raw uploaded spreadsheets.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}
