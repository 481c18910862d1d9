package ports

import "go.trai.ch/muleboot/internal/core/domain"

// ConfigLoader defines the interface for resolving the bootstrap configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the project root and merges every configuration layer on top
	// of the built-in defaults.
	Load() (*domain.Config, error)
}
