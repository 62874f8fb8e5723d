package port

import (
	"context"
	"io"
)

type ImageStore interface {
	// Put stores the image and returns the path it is served under.
	Put(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
}
