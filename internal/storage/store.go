package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/legalease/backend/internal/platform/logger"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCS   Mode = "gcs"
)

// FileStore persists uploaded contract files keyed by their generated
// storage filename. Path reports where a key lives for bookkeeping in the
// contract row; it does not imply the key exists.
type FileStore interface {
	Save(ctx context.Context, key string, file io.Reader) (int64, error)
	Delete(ctx context.Context, key string) error
	Path(key string) string
}

type Config struct {
	Mode      Mode
	UploadDir string
	GCSBucket string
}

func New(cfg Config, log *logger.Logger) (FileStore, error) {
	mode := Mode(strings.TrimSpace(string(cfg.Mode)))
	switch mode {
	case ModeLocal, "":
		return NewLocalStore(cfg.UploadDir, log)
	case ModeGCS:
		return NewGCSStore(cfg.GCSBucket, log)
	default:
		return nil, fmt.Errorf("unsupported file store mode %q", cfg.Mode)
	}
}
