// Package python drives the host interpreter and the package installer of an
// isolated environment.
package python

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/muleboot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Venv implements ports.EnvironmentManager with the interpreter's venv module.
type Venv struct {
	executor ports.Executor
}

// NewVenv creates a new Venv.
func NewVenv(executor ports.Executor) *Venv {
	return &Venv{executor: executor}
}

// Exists reports whether the environment directory is present.
func (v *Venv) Exists(env domain.Environment) (bool, error) {
	info, err := os.Stat(env.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to inspect environment"), "path", env.Dir)
	}
	if !info.IsDir() {
		return false, zerr.With(zerr.New("environment path is not a directory"), "path", env.Dir)
	}
	return true, nil
}

// Create runs "<python> -m venv <dir>". The interpreter output is kept and
// attached to the error when creation fails.
func (v *Venv) Create(ctx context.Context, python string, env domain.Environment, sysEnv []string) error {
	var out bytes.Buffer
	cmd := domain.Command{
		Name: "venv",
		Args: []string{python, "-m", "venv", env.Dir},
		Dir:  env.Project,
	}

	if err := v.executor.Execute(ctx, cmd, sysEnv, &out, &out); err != nil {
		venvErr := zerr.Wrap(err, "venv creation failed")
		venvErr = zerr.With(venvErr, "python", python)
		venvErr = zerr.With(venvErr, "path", env.Dir)
		if output := strings.TrimSpace(out.String()); output != "" {
			venvErr = zerr.With(venvErr, "output", output)
		}
		return venvErr
	}
	return nil
}
