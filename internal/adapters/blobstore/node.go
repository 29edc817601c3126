package blobstore

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jdot274/parcel/internal/core/ports"
)

// NodeID is the unique identifier for the blob store opener Graft node.
const NodeID graft.ID = "adapter.blob_store_opener"

func init() {
	graft.Register(graft.Node[ports.BlobStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BlobStoreOpener, error) {
			return NewOpener(), nil
		},
	})
}
