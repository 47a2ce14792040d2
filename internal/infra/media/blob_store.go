// Package media stores product images in a blob bucket addressed by a
// portable gocloud URL, so local disk and cloud object storage are
// interchangeable through configuration.
package media

import (
	"context"
	"io"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"workbuddy/config"
	"workbuddy/internal/domain/service"
	"workbuddy/internal/errors"
)

type blobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewBlobStore opens the configured bucket and returns it as a MediaStore.
// The caller owns closing the bucket via the returned closer.
func NewBlobStore(ctx context.Context, cfg *config.Config) (service.MediaStore, func() error, error) {
	if cfg.Media == nil || cfg.Media.BucketURL == "" {
		return nil, nil, errors.New("media bucket configuration is required")
	}

	bucket, err := blob.OpenBucket(ctx, cfg.Media.BucketURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open media bucket")
	}

	store := &blobStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(cfg.Media.PublicBaseURL, "/"),
	}

	return store, bucket.Close, nil
}

// Upload stores the content under key and returns a public URL.
func (s *blobStore) Upload(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "open bucket writer")
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()

		return "", errors.Wrap(err, "write image")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "close bucket writer")
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the object stored under key. A missing object is not
// an error, deletions are idempotent.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrap(err, "delete image")
	}

	return nil
}
