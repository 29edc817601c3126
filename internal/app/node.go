package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jdot274/parcel/internal/adapters/blobstore" //nolint:depguard // Wired in app layer
	"github.com/jdot274/parcel/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"github.com/jdot274/parcel/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/jdot274/parcel/internal/core/ports"
	"github.com/jdot274/parcel/internal/engine/query"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			blobstore.NodeID,
			query.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			opener, err := graft.Dep[ports.BlobStoreOpener](ctx)
			if err != nil {
				return nil, err
			}

			cacheLoader, err := graft.Dep[*query.Loader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, opener, cacheLoader, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
