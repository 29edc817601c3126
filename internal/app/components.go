package app

import (
	"github.com/jdot274/parcel/internal/core/ports"
)

// Components holds the wired application and the services the entry point
// needs directly.
type Components struct {
	App    *App
	Logger ports.Logger
}
