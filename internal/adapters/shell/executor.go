// Package shell provides the subprocess executor.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/muleboot/internal/adapters/detector"
	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/muleboot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger      ports.Logger
	interactive func(io.Writer) bool
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger:      logger,
		interactive: detector.Interactive,
	}
}

// WithInteractive overrides the check deciding whether a command runs under a PTY.
func (e *Executor) WithInteractive(fn func(io.Writer) bool) *Executor {
	e.interactive = fn
	return e
}

// Execute runs the command and waits for it to complete.
//
// When stdout is an interactive terminal the command runs under a PTY so that
// tools keep their progress output; stdout and stderr are merged in that case.
// Otherwise the command writes to stdout and stderr through pipes.
func (e *Executor) Execute(
	ctx context.Context,
	cmd domain.Command,
	env []string,
	stdout, stderr io.Writer,
) error {
	if len(cmd.Args) == 0 {
		return zerr.With(zerr.New("empty command"), "command", cmd.Name)
	}

	name := cmd.Args[0]
	executable := name
	if !strings.ContainsAny(name, "/"+string(filepath.Separator)) {
		lp, err := lookPath(name, env)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "executable not found"), "name", name)
		}
		executable = lp
	}

	c := exec.CommandContext(ctx, executable, cmd.Args[1:]...) //nolint:gosec // arguments are built by the bootstrapper
	c.Args[0] = name
	c.Dir = cmd.Dir
	c.Env = env

	e.logger.Debug("running " + strings.Join(cmd.Args, " "))

	var err error
	if e.interactive(stdout) {
		err = runPTY(c, stdout)
	} else {
		c.Stdout = stdout
		c.Stderr = stderr
		err = c.Run()
	}

	if err != nil {
		failure := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", strings.Join(cmd.Args, " "))
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			failure = zerr.With(failure, "exit_code", exitErr.ExitCode())
		}
		return failure
	}
	return nil
}

func runPTY(c *exec.Cmd, stdout io.Writer) error {
	ptmx, err := pty.Start(c)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	if f, ok := stdout.(*os.File); ok {
		_ = pty.InheritSize(f, ptmx)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// The copy ends with EIO once the child closes its side of the PTY.
		_, _ = io.Copy(stdout, ptmx)
	}()

	err = c.Wait()
	<-ioDone
	_ = ptmx.Close()
	return err
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env. The PATH of the current process is never consulted.
func lookPath(file string, env []string) (string, error) {
	path := envValue(env, "PATH")
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		for _, candidate := range candidates(filepath.Join(dir, file), env) {
			if err := findExecutable(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", exec.ErrNotFound
}

// envValue returns the last value of key in env.
func envValue(env []string, key string) string {
	var value string
	for _, e := range env {
		if k, v, ok := strings.Cut(e, "="); ok && domain.SameEnvKey(k, key) {
			value = v
		}
	}
	return value
}

// defaultPathExt applies when PATHEXT is unset.
const defaultPathExt = ".com;.exe;.bat;.cmd"

// withExtensions lists the Windows candidates for path: path itself when it
// already ends in one of the PATHEXT extensions, then path with each
// extension appended.
func withExtensions(path, pathext string) []string {
	if pathext == "" {
		pathext = defaultPathExt
	}

	var exts []string
	for _, ext := range strings.Split(strings.ToLower(pathext), ";") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}

	out := make([]string, 0, len(exts)+1)
	if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
		out = append(out, path)
	}
	for _, ext := range exts {
		out = append(out, path+ext)
	}
	return out
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && isExecutable(m) {
		return nil
	}
	return os.ErrPermission
}
