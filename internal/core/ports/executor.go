package ports

import (
	"context"
	"io"

	"go.trai.ch/muleboot/internal/core/domain"
)

// Executor defines the interface for running subprocesses.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd and waits for it to exit.
	//
	// The env parameter is the complete subprocess environment in "KEY=VALUE"
	// format. The program in cmd.Args[0] is resolved against the PATH in env,
	// not against the PATH of the current process.
	//
	// A non-zero exit status is reported as an error that unwraps to *exec.ExitError.
	Execute(ctx context.Context, cmd domain.Command, env []string, stdout, stderr io.Writer) error
}
