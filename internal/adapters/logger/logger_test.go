package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/muleboot/internal/adapters/logger"
	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to buffers with colors disabled.
func newTestLogger(t *testing.T) (lg *logger.Logger, stdout, stderr *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	lg = logger.New().(*logger.Logger)
	lg.SetOutput(stdout, stderr)
	return lg, stdout, stderr
}

func TestLogger_Info(t *testing.T) {
	tests := []struct {
		name       string
		tag        string
		msg        string
		goldenName string
	}{
		{name: "tagged message", tag: domain.ProductTag, msg: "Created default requirements.txt", goldenName: "info_tagged"},
		{name: "untagged message", tag: "", msg: "some message", goldenName: "info_untagged"},
		{name: "multiline message", tag: domain.ProductTag, msg: "line1\nline2", goldenName: "info_multiline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, stdout, stderr := newTestLogger(t)
			lg.SetTag(tt.tag)
			lg.Info(tt.msg)

			assert.Empty(t, stderr.String(), "info must not reach stderr")
			g := goldie.New(t)
			g.Assert(t, tt.goldenName, stdout.Bytes())
		})
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, stdout, stderr := newTestLogger(t)
	lg.Warn("launcher is not executable")

	assert.Empty(t, stdout.String())
	g := goldie.New(t)
	g.Assert(t, "warn_basic", stderr.Bytes())
}

func TestLogger_Debug(t *testing.T) {
	t.Run("dropped by default", func(t *testing.T) {
		lg, stdout, stderr := newTestLogger(t)
		lg.Debug("environment exists")

		assert.Empty(t, stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("emitted when enabled", func(t *testing.T) {
		lg, stdout, stderr := newTestLogger(t)
		lg.SetDebug(true)
		lg.Debug("environment exists")

		assert.Empty(t, stdout.String())
		g := goldie.New(t)
		g.Assert(t, "debug_enabled", stderr.Bytes())
	})
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "plain error",
			err:        errors.New("boom"),
			goldenName: "error_plain",
		},
		{
			name: "step error with cause chain",
			err: domain.NewStepError(
				domain.StepInstall,
				domain.ErrInstallFailed,
				zerr.With(zerr.Wrap(errors.New("exit status 1"), "pip install failed"), "exit_code", 1),
			),
			goldenName: "error_step_chain",
		},
		{
			name: "captured output",
			err: zerr.With(
				zerr.Wrap(errors.New("exit status 2"), "pip upgrade failed"),
				"output", "ERROR: network unreachable\nretrying\n",
			),
			goldenName: "error_output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, stdout, stderr := newTestLogger(t)
			lg.Error(tt.err)

			assert.Empty(t, stdout.String())
			g := goldie.New(t)
			g.Assert(t, tt.goldenName, stderr.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, stdout, stderr := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, stdout, stderr := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("Created default requirements.txt")
	lg.Error(zerr.With(zerr.New("pip install failed"), "exit_code", 1))

	var info map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "Created default requirements.txt", info["msg"])
	assert.Equal(t, domain.ProductTag, info["tag"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "bootstrap failed", failure["msg"])
	assert.NotNil(t, failure["error"])
}

func TestLogger_SetOutputPreservesJSON(t *testing.T) {
	lg, _, _ := newTestLogger(t)
	lg.SetJSON(true)

	stdout := &bytes.Buffer{}
	lg.SetOutput(stdout, &bytes.Buffer{})
	lg.Info("hello")

	assert.True(t, json.Valid(stdout.Bytes()), "output should still be JSON: %q", stdout.String())
}
