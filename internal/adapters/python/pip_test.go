package python_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/muleboot/internal/adapters/python"
	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/muleboot/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestPip_Upgrade(t *testing.T) {
	env := domain.NewEnvironment("/srv/app/.venv")
	env.Project = "/srv/app"
	activated := []string{"PATH=/srv/app/.venv/bin", "VIRTUAL_ENV=/srv/app/.venv"}

	t.Run("discards output on success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)
		executor.EXPECT().
			Execute(gomock.Any(), domain.Command{
				Name: "pip-upgrade",
				Args: []string{env.Python, "-m", "pip", "install", "--upgrade", "pip", "--quiet"},
				Dir:  "/srv/app",
			}, activated, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Command, _ []string, stdout, _ io.Writer) error {
				_, _ = io.WriteString(stdout, "noise\n")
				return nil
			})

		var stdout, stderr bytes.Buffer
		pip := python.NewPip(executor).WithOutput(&stdout, &stderr)
		require.NoError(t, pip.Upgrade(context.Background(), env, activated))
		assert.Empty(t, stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("surfaces output on failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)
		cause := errors.New("exit status 2")
		executor.EXPECT().
			Execute(gomock.Any(), gomock.Any(), activated, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Command, _ []string, _, stderr io.Writer) error {
				_, _ = io.WriteString(stderr, "ERROR: Could not find a version\n")
				return cause
			})

		err := python.NewPip(executor).Upgrade(context.Background(), env, activated)
		require.ErrorIs(t, err, cause)

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "ERROR: Could not find a version", zErr.Metadata()["output"])
	})
}

func TestPip_Install(t *testing.T) {
	env := domain.NewEnvironment("/srv/app/.venv")
	env.Project = "/srv/app"
	activated := []string{"PATH=/srv/app/.venv/bin"}

	t.Run("streams output", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)

		var stdout, stderr bytes.Buffer
		executor.EXPECT().
			Execute(gomock.Any(), domain.Command{
				Name: "pip-install",
				Args: []string{env.Python, "-m", "pip", "install", "-r", "/srv/app/requirements.txt"},
				Dir:  "/srv/app",
			}, activated, &stdout, &stderr).
			Return(nil)

		pip := python.NewPip(executor).WithOutput(&stdout, &stderr)
		require.NoError(t, pip.Install(context.Background(), env, "/srv/app/requirements.txt", activated))
	})

	t.Run("wraps failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)
		cause := errors.New("exit status 1")
		executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(cause)

		err := python.NewPip(executor).Install(context.Background(), env, "/srv/app/requirements.txt", activated)
		require.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "pip install failed")

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "/srv/app/requirements.txt", zErr.Metadata()["manifest"])
	})
}
