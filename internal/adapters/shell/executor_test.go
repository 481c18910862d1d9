package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/muleboot/internal/adapters/shell"
	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/muleboot/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T, interactive bool) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	return shell.NewExecutor(mockLogger).WithInteractive(func(io.Writer) bool { return interactive })
}

func systemEnv(extra ...string) []string {
	return append([]string{"PATH=" + os.Getenv("PATH")}, extra...)
}

func TestExecutor_Execute_ExplicitEnvironment(t *testing.T) {
	executor := newExecutor(t, false)

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), domain.Command{
		Name: "print-env",
		Args: []string{"sh", "-c", `printf %s "$VIRTUAL_ENV"`},
	}, systemEnv("VIRTUAL_ENV=/srv/app/.venv"), &stdout, io.Discard)

	require.NoError(t, err)
	assert.Equal(t, "/srv/app/.venv", stdout.String())
}

func TestExecutor_Execute_SeparateStreams(t *testing.T) {
	executor := newExecutor(t, false)

	var stdout, stderr bytes.Buffer
	err := executor.Execute(context.Background(), domain.Command{
		Name: "streams",
		Args: []string{"sh", "-c", "echo out; echo err >&2"},
	}, systemEnv(), &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecutor_Execute_WorkingDirectory(t *testing.T) {
	executor := newExecutor(t, false)
	dir := t.TempDir()

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), domain.Command{
		Name: "pwd",
		Args: []string{"sh", "-c", "pwd -P"},
		Dir:  dir,
	}, systemEnv(), &stdout, io.Discard)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want+"\n", stdout.String())
}

func TestExecutor_Execute_ResolvesAgainstGivenPath(t *testing.T) {
	executor := newExecutor(t, false)

	binDir := t.TempDir()
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "python"), []byte("#!/bin/sh\necho isolated\n"), 0o700))

	// sh itself must stay resolvable for the shebang, so the system PATH follows.
	env := []string{"PATH=" + binDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), domain.Command{
		Name: "python",
		Args: []string{"python"},
	}, env, &stdout, io.Discard)

	require.NoError(t, err)
	assert.Equal(t, "isolated\n", stdout.String())
}

func TestExecutor_Execute_IgnoresProcessPath(t *testing.T) {
	executor := newExecutor(t, false)

	err := executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"sh", "-c", "true"},
	}, []string{"PATH=" + t.TempDir()}, io.Discard, io.Discard)

	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestExecutor_Execute_ExitCode(t *testing.T) {
	executor := newExecutor(t, false)

	err := executor.Execute(context.Background(), domain.Command{
		Name: "fail",
		Args: []string{"sh", "-c", "exit 3"},
	}, systemEnv(), io.Discard, io.Discard)

	require.Error(t, err)
	assert.Equal(t, 3, domain.ExitCodeOf(err))

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
	assert.Equal(t, "sh -c exit 3", zErr.Metadata()["command"])
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := newExecutor(t, false)

	err := executor.Execute(context.Background(), domain.Command{Name: "nothing"}, systemEnv(), io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty command")
}

func TestExecutor_Execute_Canceled(t *testing.T) {
	executor := newExecutor(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executor.Execute(ctx, domain.Command{
		Name: "sleep",
		Args: []string{"sleep", "5"},
	}, systemEnv(), io.Discard, io.Discard)
	require.Error(t, err)
}

func TestExecutor_Execute_PTY(t *testing.T) {
	executor := newExecutor(t, true)

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), domain.Command{
		Name: "tty",
		Args: []string{"sh", "-c", "test -t 1 && echo terminal"},
	}, systemEnv(), &stdout, io.Discard)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "terminal")
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "tool")
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data"), []byte("x"), 0o600))

	got, err := shell.LookPath("tool", []string{"HOME=/root", "PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = shell.LookPath("data", []string{"PATH=" + dir})
	require.ErrorIs(t, err, exec.ErrNotFound)

	_, err = shell.LookPath("tool", []string{"HOME=/root"})
	require.ErrorIs(t, err, exec.ErrNotFound)
}

func TestWithExtensions(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pathext string
		want    []string
	}{
		{
			name:    "bare name",
			path:    `C:\Python312\python3`,
			pathext: ".COM;.EXE",
			want:    []string{`C:\Python312\python3.com`, `C:\Python312\python3.exe`},
		},
		{
			name:    "known extension is tried as is first",
			path:    `C:\Python312\python.exe`,
			pathext: ".EXE;.BAT",
			want:    []string{`C:\Python312\python.exe`, `C:\Python312\python.exe.exe`, `C:\Python312\python.exe.bat`},
		},
		{
			name: "default extensions",
			path: "python3",
			want: []string{"python3.com", "python3.exe", "python3.bat", "python3.cmd"},
		},
		{
			name:    "tolerates blanks and missing dots",
			path:    "pip",
			pathext: " exe;;.CMD ",
			want:    []string{"pip.exe", "pip.cmd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shell.WithExtensions(tt.path, tt.pathext))
		})
	}
}

func TestLookPath_LastPathWins(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	tool := filepath.Join(second, "tool")
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700))

	got, err := shell.LookPath("tool", []string{"PATH=" + first, "PATH=" + second})
	require.NoError(t, err)
	assert.Equal(t, tool, got)
}
