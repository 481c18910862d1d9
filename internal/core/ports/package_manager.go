package ports

import (
	"context"

	"go.trai.ch/muleboot/internal/core/domain"
)

// PackageManager drives the package installer inside an isolated environment.
//
//go:generate mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// Upgrade upgrades the installer itself. Normal output is discarded.
	Upgrade(ctx context.Context, env domain.Environment, activated []string) error

	// Install installs every entry of the manifest at manifestPath.
	// Installer output is streamed to the user.
	Install(ctx context.Context, env domain.Environment, manifestPath string, activated []string) error
}
