package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/nikolayk812/storefront/internal/port"
)

type diskStore struct {
	dir       string
	urlPrefix string
}

// NewDisk writes images under dir and serves them as urlPrefix/<name>.
func NewDisk(dir, urlPrefix string) (port.ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	return &diskStore{
		dir:       dir,
		urlPrefix: urlPrefix,
	}, nil
}

func (s *diskStore) Put(ctx context.Context, name string, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("io.Copy: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("os.Rename: %w", err)
	}

	return path.Join(s.urlPrefix, name), nil
}
