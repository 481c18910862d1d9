package ports

import "go.trai.ch/muleboot/internal/core/domain"

// StateStore persists the record of the last successful installation.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Get retrieves the record kept in the environment at envDir.
	// Returns nil, nil if not found.
	Get(envDir string) (*domain.BootstrapRecord, error)

	// Put stores the record in the environment at envDir.
	Put(envDir string, record domain.BootstrapRecord) error
}
