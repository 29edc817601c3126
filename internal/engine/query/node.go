package query

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jdot274/parcel/internal/adapters/codec"     //nolint:depguard // Wired in engine wiring
	"github.com/jdot274/parcel/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/jdot274/parcel/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/jdot274/parcel/internal/core/ports"
)

// NodeID is the unique identifier for the loader Graft node.
const NodeID graft.ID = "engine.loader"

func init() {
	graft.Register(graft.Node[*Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			codec.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Loader, error) {
			graphCodec, err := graft.Dep[ports.GraphCodec](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewLoader(graphCodec, log, tracer), nil
		},
	})
}
