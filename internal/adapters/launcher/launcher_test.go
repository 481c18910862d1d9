package launcher_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/muleboot/internal/adapters/launcher"
	"go.trai.ch/muleboot/internal/core/domain"
)

func TestLauncher_Exec(t *testing.T) {
	var gotDir, gotArgv0 string
	var gotArgv, gotEnv []string

	l := launcher.New().
		WithChdir(func(dir string) error {
			gotDir = dir
			return nil
		}).
		WithExec(func(argv0 string, argv, envv []string) error {
			gotArgv0, gotArgv, gotEnv = argv0, argv, envv
			return errors.New("exec format error")
		})

	h := domain.Handoff{
		Mode: domain.HandoffExec,
		Dir:  "/srv/app",
		Args: []string{"/srv/app/.venv/bin/python", "app.py"},
		Env:  []string{"VIRTUAL_ENV=/srv/app/.venv"},
	}
	err := l.Handoff(context.Background(), h)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exec format error")
	assert.Equal(t, "/srv/app", gotDir)
	assert.Equal(t, "/srv/app/.venv/bin/python", gotArgv0)
	assert.Equal(t, []string{"/srv/app/.venv/bin/python", "app.py"}, gotArgv)
	assert.Equal(t, []string{"VIRTUAL_ENV=/srv/app/.venv"}, gotEnv)
}

func TestLauncher_ExecChdirFailure(t *testing.T) {
	execCalled := false
	l := launcher.New().
		WithChdir(func(string) error { return errors.New("no such directory") }).
		WithExec(func(string, []string, []string) error {
			execCalled = true
			return nil
		})

	err := l.Handoff(context.Background(), domain.Handoff{Dir: "/missing", Args: []string{"/bin/true"}})
	require.Error(t, err)
	assert.False(t, execCalled)
}

func TestLauncher_EmptyCommand(t *testing.T) {
	err := launcher.New().Handoff(context.Background(), domain.Handoff{})
	require.Error(t, err)
}

func TestLauncher_Child(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		wantCode int
		wantOut  string
	}{
		{name: "success", script: "echo started", wantCode: 0, wantOut: "started\n"},
		{name: "mirrors exit status", script: "exit 7", wantCode: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			l := launcher.New().WithIO(nil, &stdout, &bytes.Buffer{})

			err := l.Handoff(context.Background(), domain.Handoff{
				Mode: domain.HandoffChild,
				Dir:  t.TempDir(),
				Args: []string{"/bin/sh", "-c", tt.script},
			})

			assert.Equal(t, tt.wantCode, domain.ExitCodeOf(err))
			if tt.wantCode != 0 {
				var appExit *domain.AppExit
				require.ErrorAs(t, err, &appExit)
				assert.Equal(t, tt.wantCode, appExit.Code)
			}
			assert.Equal(t, tt.wantOut, stdout.String())
		})
	}
}

func TestLauncher_ChildEnvironmentAndDirectory(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	l := launcher.New().WithIO(nil, &stdout, &bytes.Buffer{})

	err := l.Handoff(context.Background(), domain.Handoff{
		Mode: domain.HandoffChild,
		Dir:  dir,
		Args: []string{"/bin/sh", "-c", `printf '%s' "$VIRTUAL_ENV"`},
		Env:  []string{"VIRTUAL_ENV=" + dir + "/.venv"},
	})

	require.NoError(t, err)
	assert.Equal(t, dir+"/.venv", stdout.String())
}

func TestLauncher_ChildStartFailure(t *testing.T) {
	l := launcher.New().WithIO(nil, &bytes.Buffer{}, &bytes.Buffer{})

	err := l.Handoff(context.Background(), domain.Handoff{
		Mode: domain.HandoffChild,
		Args: []string{"/nonexistent/python", "app.py"},
	})
	require.Error(t, err)

	var appExit *domain.AppExit
	assert.False(t, errors.As(err, &appExit))
}

func TestLauncher_ChildCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := launcher.New().Handoff(ctx, domain.Handoff{
		Mode: domain.HandoffChild,
		Args: []string{"/bin/true"},
	})
	require.ErrorIs(t, err, context.Canceled)
}
