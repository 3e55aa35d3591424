// Package storage provides blob storage backends for uploaded media.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"snapfeed/internal/config"
)

// ErrNotFound is returned when a blob key does not exist in the store.
var ErrNotFound = errors.New("blob not found")

// BlobStore reads and writes opaque media blobs by key. Uploads are written
// to the store before the record referencing them is committed.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewFromConfig selects the blob backend from configuration.
func NewFromConfig(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	switch cfg.MediaStore {
	case config.MediaStoreDisk:
		return NewDiskStore(cfg.MediaDir)
	case config.MediaStoreGCS:
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	default:
		return nil, fmt.Errorf("unknown media store %q", cfg.MediaStore)
	}
}
