package service

import (
	"context"
	"io"
)

// MediaUploadService uploads one file to the media host and returns its
// publicly resolvable URL. No chunking, no resumability, no deduplication.
type MediaUploadService interface {
	Upload(ctx context.Context, file io.Reader, filename, contentType string) (string, error)
}
