package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/legalease/backend/internal/platform/logger"
)

type localStore struct {
	dir string
	log *logger.Logger
}

func NewLocalStore(dir string, log *logger.Logger) (FileStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", dir, err)
	}
	return &localStore{dir: dir, log: log.With("store", "LocalFileStore")}, nil
}

func (s *localStore) Save(ctx context.Context, key string, file io.Reader) (int64, error) {
	path := s.Path(key)
	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %q: %w", path, err)
	}
	written, err := io.Copy(out, file)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return 0, fmt.Errorf("failed to write file %q: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("failed to close file %q: %w", path, err)
	}
	return written, nil
}

func (s *localStore) Delete(ctx context.Context, key string) error {
	path := s.Path(key)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove file %q: %w", path, err)
	}
	return nil
}

func (s *localStore) Path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}
