package blobstore

import (
	"context"

	"github.com/jdot274/parcel/internal/core/ports"
)

// Opener implements ports.BlobStoreOpener.
type Opener struct{}

// NewOpener creates an Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the cache directory with the given backend.
func (o *Opener) Open(ctx context.Context, dir, backend string) (ports.BlobStore, error) {
	s, err := Open(ctx, dir, backend)
	if err != nil {
		return nil, err
	}
	return s, nil
}
