// Package launcher transfers control from the bootstrapper to the application.
package launcher

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ExecFunc replaces the current process image. It only returns on failure.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Launcher implements ports.Launcher.
type Launcher struct {
	exec    ExecFunc
	chdir   func(string) error
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	signals []os.Signal
}

// New creates a Launcher using the platform's process replacement primitive
// and the standard streams.
func New() *Launcher {
	return &Launcher{
		exec:    execve,
		chdir:   os.Chdir,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		signals: forwardedSignals,
	}
}

// WithExec overrides the process replacement primitive.
func (l *Launcher) WithExec(fn ExecFunc) *Launcher {
	l.exec = fn
	return l
}

// WithChdir overrides the working directory change done before exec.
func (l *Launcher) WithChdir(fn func(string) error) *Launcher {
	l.chdir = fn
	return l
}

// WithIO overrides the streams handed to a child application.
func (l *Launcher) WithIO(stdin io.Reader, stdout, stderr io.Writer) *Launcher {
	l.stdin = stdin
	l.stdout = stdout
	l.stderr = stderr
	return l
}

// WithSignals overrides the signals forwarded to a child application.
func (l *Launcher) WithSignals(sigs ...os.Signal) *Launcher {
	l.signals = sigs
	return l
}

// Handoff starts the application. Exec mode falls back to child mode where
// the platform cannot replace the process image.
func (l *Launcher) Handoff(ctx context.Context, h domain.Handoff) error {
	if len(h.Args) == 0 {
		return zerr.New("empty application command")
	}

	if h.Mode == domain.HandoffChild || l.exec == nil {
		return l.spawn(ctx, h)
	}
	return l.replace(h)
}

func (l *Launcher) replace(h domain.Handoff) error {
	if err := l.chdir(h.Dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to change directory"), "dir", h.Dir)
	}

	err := l.exec(h.Args[0], h.Args, h.Env)
	return zerr.With(zerr.Wrap(err, "exec failed"), "path", h.Args[0])
}

// spawn runs the application as a child, forwards the configured signals to
// it and reports its exit status. The child is not tied to ctx: an interrupt
// reaches it through forwarding and the child decides how to exit.
func (l *Launcher) spawn(ctx context.Context, h domain.Handoff) error {
	if err := ctx.Err(); err != nil {
		return zerr.Wrap(err, "handoff canceled")
	}

	sigs := make(chan os.Signal, 4)
	if len(l.signals) > 0 {
		signal.Notify(sigs, l.signals...)
		defer signal.Stop(sigs)
	}

	//nolint:gosec // arguments are built by the bootstrapper
	cmd := exec.Command(h.Args[0], h.Args[1:]...)
	cmd.Dir = h.Dir
	cmd.Env = h.Env
	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr
	isolateChild(cmd)

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start application"), "path", h.Args[0])
	}

	exited := make(chan struct{})
	var g errgroup.Group

	g.Go(func() error {
		defer close(exited)
		return cmd.Wait()
	})

	g.Go(func() error {
		for {
			select {
			case sig := <-sigs:
				_ = cmd.Process.Signal(sig)
			case <-exited:
				return nil
			}
		}
	})

	err := g.Wait()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &domain.AppExit{Code: exitStatus(exitErr.ProcessState)}
	}
	return zerr.With(zerr.Wrap(err, "failed to wait for application"), "path", h.Args[0])
}
