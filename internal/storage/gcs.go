package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"

	"github.com/legalease/backend/internal/platform/logger"
)

type gcsStore struct {
	client *gcs.Client
	bucket string
	log    *logger.Logger
}

func NewGCSStore(bucket string, log *logger.Logger) (FileStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs file store requires a bucket name")
	}
	client, err := gcs.NewClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &gcsStore{client: client, bucket: bucket, log: log.With("store", "GCSFileStore")}, nil
}

func (s *gcsStore) Save(ctx context.Context, key string, file io.Reader) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if ct := contentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	written, err := io.Copy(w, file)
	if err != nil {
		_ = w.Close()
		return 0, fmt.Errorf("failed to write object %q to GCS: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("failed to close GCS writer for %q: %w", key, err)
	}
	return written, nil
}

func (s *gcsStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, s.bucket, err)
	}
	return nil
}

func (s *gcsStore) Path(key string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, key)
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(s, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case strings.HasSuffix(s, ".txt"):
		return "text/plain"
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	default:
		return ""
	}
}
