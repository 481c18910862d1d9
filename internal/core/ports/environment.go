package ports

import (
	"context"

	"go.trai.ch/muleboot/internal/core/domain"
)

// EnvironmentManager creates and inspects isolated environments.
//
//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentManager interface {
	// Exists reports whether the environment directory is present.
	Exists(env domain.Environment) (bool, error)

	// Create materializes a new environment using the given host interpreter.
	// The sysEnv slice is the environment the interpreter runs under.
	Create(ctx context.Context, python string, env domain.Environment, sysEnv []string) error
}
