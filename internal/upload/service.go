// Package upload accepts product images: it checks size and sniffs the real content
// type before handing the bytes to an image store.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

type Service struct {
	store    port.ImageStore
	maxBytes int64
	clock    port.Clock
}

func NewService(store port.ImageStore, maxBytes int64, clock port.Clock) *Service {
	return &Service{
		store:    store,
		maxBytes: maxBytes,
		clock:    clock,
	}
}

// Upload stores the image and returns the path it is served under.
func (s *Service) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("io.ReadAll: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: image is larger than %d bytes", domain.ErrValidation, s.maxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: image is empty", domain.ErrValidation)
	}

	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), allowedTypes...) {
		return "", fmt.Errorf("%w: only jpg, png and webp images can be uploaded, got %s", domain.ErrValidation, mime.String())
	}

	name := s.storedName(filename, mime.Extension())

	location, err := s.store.Put(ctx, name, mime.String(), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("store.Put: %w", err)
	}

	return location, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// storedName keeps a readable stem of the client file name and makes it unique with a timestamp.
func (s *Service) storedName(filename, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stem = unsafeChars.ReplaceAllString(stem, "_")
	if stem == "" || stem == "_" {
		stem = "image"
	}

	return fmt.Sprintf("%s_%d%s", stem, s.clock.Now().UnixMilli(), ext)
}
