package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/muleboot/internal/adapters/logger"
	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "single standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name: "zerr wrapped chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("root cause"), "middle layer"),
				"outer layer",
			),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name:         "metadata on a plain error folds into the cause",
			err:          zerr.With(errors.New("exit status 3"), "exit_code", 3),
			wantMessages: []string{"exit status 3"},
			wantMetadata: []map[string]any{{"exit_code": 3}},
		},
		{
			name: "step error descends into its cause",
			err: domain.NewStepError(
				domain.StepUpgradePip,
				domain.ErrPipUpgradeFailed,
				zerr.With(zerr.New("pip upgrade failed"), "output", "boom"),
			),
			wantMessages: []string{"upgrade-pip: failed to upgrade package manager", "pip upgrade failed"},
			wantMetadata: []map[string]any{nil, {"output": "boom"}},
		},
		{
			name:         "step error without cause stops at the step",
			err:          domain.NewStepError(domain.StepHandoff, domain.ErrEntrypointNotFound, nil),
			wantMessages: []string{"handoff: application entry point not found"},
			wantMetadata: []map[string]any{nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			messages := make([]string, 0, len(entries))
			metadata := make([]map[string]any, 0, len(entries))
			for _, e := range entries {
				messages = append(messages, e.Message)
				metadata = append(metadata, e.Metadata)
			}
			assert.Equal(t, tt.wantMessages, messages)
			assert.Equal(t, tt.wantMetadata, metadata)
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	got := logger.FormatErrorEntries([]logger.ErrorEntry{
		{Message: "outer\ndetail"},
		{Message: "inner", Metadata: map[string]any{"path": "/tmp/x", "code": 2}},
	})

	want := "Error: outer\n" +
		"       detail\n" +
		"\n" +
		"  Caused by:\n" +
		"    → inner\n" +
		"      code: 2\n" +
		"      path: /tmp/x"
	assert.Equal(t, want, got)
}
