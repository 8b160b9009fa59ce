package gcsio

import (
	"context"
)

// Storage provides an interface for the cloud storage operations the
// batch commands need, so tests can mock them out.
type Storage interface {
	// FetchFeed downloads raw feed bytes from the given storage URI.
	FetchFeed(ctx context.Context, uri string) ([]byte, error)

	// UploadFile uploads a local file to a bucket under the given object name.
	UploadFile(ctx context.Context, bucketName, objectName, filePath string) error
}

// GCSStorage is the concrete Storage backed by Google Cloud Storage.
type GCSStorage struct{}

// NewGCSStorage creates a new GCSStorage.
func NewGCSStorage() *GCSStorage {
	return &GCSStorage{}
}

func (s *GCSStorage) FetchFeed(ctx context.Context, uri string) ([]byte, error) {
	return FetchFeed(ctx, uri)
}

func (s *GCSStorage) UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	return UploadFile(ctx, bucketName, objectName, filePath)
}
