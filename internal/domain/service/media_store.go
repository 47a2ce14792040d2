package service

import (
	"context"
	"io"
)

// MediaStore defines the interface for product image storage.
type MediaStore interface {
	// Upload stores the content under key and returns a public URL.
	Upload(ctx context.Context, key string, contentType string, r io.Reader) (string, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
}
