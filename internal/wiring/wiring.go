// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/jdot274/parcel/internal/adapters/blobstore"
	_ "github.com/jdot274/parcel/internal/adapters/codec"
	_ "github.com/jdot274/parcel/internal/adapters/config"
	_ "github.com/jdot274/parcel/internal/adapters/logger"
	_ "github.com/jdot274/parcel/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/jdot274/parcel/internal/app"
	_ "github.com/jdot274/parcel/internal/engine/query"
)
