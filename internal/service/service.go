// Package service implements the business rules of the application. Every
// operation that touches more than one record runs inside a database
// transaction so readers never observe a partial write.
package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"snapfeed/internal/middleware"
	"snapfeed/internal/storage"

	"github.com/google/uuid"
)

// storeTimeout bounds every store-touching operation. Expiry surfaces as an
// internal error to the caller.
const storeTimeout = 5 * time.Second

func withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

// newBlobKey produces an opaque object key for an uploaded file, keeping the
// original extension for content-type sniffing on download.
func newBlobKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.New().String() + ext
}

// cleanupBlob removes an uploaded blob after a failed or superseded record
// write. Cleanup is best-effort: failures are logged, never returned, so they
// cannot mask the original error.
func cleanupBlob(ctx context.Context, blobs storage.BlobStore, key string) {
	if key == "" || blobs == nil {
		return
	}
	if err := blobs.Delete(ctx, key); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to clean up orphaned blob",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
