package python

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/muleboot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pip implements ports.PackageManager by running pip as a module of the
// environment's interpreter.
type Pip struct {
	executor ports.Executor
	stdout   io.Writer
	stderr   io.Writer
}

// NewPip creates a new Pip streaming installer output to the standard streams.
func NewPip(executor ports.Executor) *Pip {
	return &Pip{
		executor: executor,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// WithOutput redirects the streamed installer output.
func (p *Pip) WithOutput(stdout, stderr io.Writer) *Pip {
	p.stdout = stdout
	p.stderr = stderr
	return p
}

// Upgrade runs "pip install --upgrade pip --quiet". Output is captured and
// only surfaces as error metadata.
func (p *Pip) Upgrade(ctx context.Context, env domain.Environment, activated []string) error {
	var out bytes.Buffer
	cmd := domain.Command{
		Name: "pip-upgrade",
		Args: []string{env.Python, "-m", "pip", "install", "--upgrade", "pip", "--quiet"},
		Dir:  env.Project,
	}

	if err := p.executor.Execute(ctx, cmd, activated, &out, &out); err != nil {
		pipErr := zerr.Wrap(err, "pip upgrade failed")
		if output := strings.TrimSpace(out.String()); output != "" {
			pipErr = zerr.With(pipErr, "output", output)
		}
		return pipErr
	}
	return nil
}

// Install runs "pip install -r <manifest>" with output streamed to the user.
func (p *Pip) Install(ctx context.Context, env domain.Environment, manifestPath string, activated []string) error {
	cmd := domain.Command{
		Name: "pip-install",
		Args: []string{env.Python, "-m", "pip", "install", "-r", manifestPath},
		Dir:  env.Project,
	}

	if err := p.executor.Execute(ctx, cmd, activated, p.stdout, p.stderr); err != nil {
		return zerr.With(zerr.Wrap(err, "pip install failed"), "manifest", manifestPath)
	}
	return nil
}
