package codec

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jdot274/parcel/internal/core/ports"
)

// NodeID is the unique identifier for the graph codec Graft node.
const NodeID graft.ID = "adapter.graph_codec"

func init() {
	graft.Register(graft.Node[ports.GraphCodec]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GraphCodec, error) {
			c, err := New()
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	})
}
