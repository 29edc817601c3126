// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/jdot274/parcel/internal/core/domain"
)

// BlobStore is read access to the engine's content-addressed cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BlobStore interface {
	// ManifestInfo reads the request tracker manifest.
	// Returns nil, nil if the cache has no manifest.
	ManifestInfo(ctx context.Context) (*domain.ManifestInfo, error)

	// GetBlob reads a small blob. Missing keys fail with domain.ErrBlobNotFound.
	GetBlob(ctx context.Context, key string) ([]byte, error)

	// GetLargeBlob reads a blob that may have been written in chunks.
	// Missing keys fail with domain.ErrBlobNotFound.
	GetLargeBlob(ctx context.Context, key string) ([]byte, error)

	// Close releases the store's resources.
	Close() error
}

// BlobStoreOpener opens the blob store of a cache directory.
type BlobStoreOpener interface {
	// Open opens the cache at dir with the given backend ("auto" detects it).
	Open(ctx context.Context, dir, backend string) (BlobStore, error)
}
