package gcsio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
)

// UploadFile uploads a local file to a GCS bucket under the given
// object name. It assumes Application Default Credentials are
// configured.
func UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file %q: %w", filePath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("copy file to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}

// UploadRunOutputs copies the output files of a run into the bucket
// under the given prefix, keeping the local file names.
func UploadRunOutputs(ctx context.Context, bucketName, prefix string, files []string) error {
	for _, file := range files {
		object := path.Join(prefix, filepath.Base(file))
		if err := UploadFile(ctx, bucketName, object, file); err != nil {
			return fmt.Errorf("upload %s: %w", file, err)
		}
	}
	return nil
}
