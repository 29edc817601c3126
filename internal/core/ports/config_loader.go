package ports

import "github.com/jdot274/parcel/internal/core/domain"

// ConfigLoader defines the interface for loading the inspector configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration found from the given working directory.
	// If explicitPath is non-empty that file is read instead of searching.
	// A missing config file yields domain.DefaultConfig().
	Load(cwd, explicitPath string) (domain.Config, error)
}
