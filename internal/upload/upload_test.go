package upload_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

var fixedClock = port.ClockFunc(func() time.Time {
	return time.UnixMilli(1767225600000)
})

func TestUpload(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		body      []byte
		wantPath  string
		wantError string
	}{
		{
			name:     "png: stored with sanitized name",
			filename: "my photo (1).png",
			body:     pngHeader,
			wantPath: "/uploads/my_photo__1__1767225600000.png",
		},
		{
			name:     "jpeg with wrong extension: real type wins",
			filename: "avatar.txt",
			body:     jpegHeader,
			wantPath: "/uploads/avatar_1767225600000.jpg",
		},
		{
			name:      "text file: rejected",
			filename:  "notes.png",
			body:      []byte("just some text pretending to be an image"),
			wantError: "only jpg, png and webp images can be uploaded",
		},
		{
			name:      "too large: rejected",
			filename:  "big.png",
			body:      append(pngHeader, bytes.Repeat([]byte{0}, 1024)...),
			wantError: "image is larger than 512 bytes",
		},
		{
			name:      "empty: rejected",
			filename:  "empty.png",
			wantError: "image is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store, err := upload.NewDisk(dir, "/uploads")
			require.NoError(t, err)

			svc := upload.NewService(store, 512, fixedClock)

			location, err := svc.Upload(t.Context(), tt.filename, bytes.NewReader(tt.body))
			if tt.wantError != "" {
				require.ErrorIs(t, err, domain.ErrValidation)
				assert.Contains(t, err.Error(), tt.wantError)

				entries, err := os.ReadDir(dir)
				require.NoError(t, err)
				assert.Empty(t, entries)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, location)

			stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(location)))
			require.NoError(t, err)
			assert.Equal(t, tt.body, stored)
		})
	}
}

func TestWithBreaker_OpensAfterFailures(t *testing.T) {
	failing := &failingStore{}
	store := upload.WithBreaker(failing, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for range 5 {
		_, err := store.Put(t.Context(), "a.png", "image/png", strings.NewReader("x"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrTransient)
	}

	_, err := store.Put(t.Context(), "a.png", "image/png", strings.NewReader("x"))
	require.ErrorIs(t, err, domain.ErrTransient)
	assert.Equal(t, 5, failing.calls)
}

func TestWithBreaker_PassesThrough(t *testing.T) {
	disk, err := upload.NewDisk(t.TempDir(), "/uploads")
	require.NoError(t, err)

	store := upload.WithBreaker(disk, time.Second, slog.Default())

	location, err := store.Put(t.Context(), "ok.png", "image/png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/ok.png", location)
}

type failingStore struct {
	calls int
}

func (f *failingStore) Put(context.Context, string, string, io.Reader) (string, error) {
	f.calls++
	return "", errors.New("disk full")
}
