package domain_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/muleboot/internal/core/domain"
)

func TestNewEnvironment(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}
	env := domain.NewEnvironment("/srv/app/.venv")
	assert.Equal(t, "/srv/app/.venv", env.Dir)
	assert.Equal(t, "/srv/app/.venv/bin/python", env.Python)

	act := env.Activation()
	assert.Equal(t, "/srv/app/.venv", act.VirtualEnv)
	assert.Equal(t, "/srv/app/.venv/bin", act.PathPrefix)
	assert.Equal(t, []string{"PYTHONHOME"}, act.Unset)
}

func TestActivation_Apply(t *testing.T) {
	act := domain.Activation{
		VirtualEnv: filepath.FromSlash("/p/.venv"),
		PathPrefix: filepath.FromSlash("/p/.venv/bin"),
		Unset:      []string{"PYTHONHOME"},
	}
	sep := string(os.PathListSeparator)

	tests := []struct {
		name string
		base []string
		want []string
	}{
		{
			name: "prepends PATH and sets VIRTUAL_ENV",
			base: []string{"HOME=/home/u", "PATH=/usr/bin", "PYTHONHOME=/opt/py"},
			want: []string{"HOME=/home/u", "PATH=" + act.PathPrefix + sep + "/usr/bin", "VIRTUAL_ENV=" + act.VirtualEnv},
		},
		{
			name: "replaces an existing VIRTUAL_ENV",
			base: []string{"VIRTUAL_ENV=/other", "PATH=/usr/bin"},
			want: []string{"VIRTUAL_ENV=" + act.VirtualEnv, "PATH=" + act.PathPrefix + sep + "/usr/bin"},
		},
		{
			name: "adds PATH when missing",
			base: []string{"HOME=/home/u"},
			want: []string{"HOME=/home/u", "PATH=" + act.PathPrefix, "VIRTUAL_ENV=" + act.VirtualEnv},
		},
		{
			name: "empty PATH",
			base: []string{"PATH="},
			want: []string{"PATH=" + act.PathPrefix, "VIRTUAL_ENV=" + act.VirtualEnv},
		},
		{
			name: "keeps malformed entries",
			base: []string{"garbage"},
			want: []string{"garbage", "PATH=" + act.PathPrefix, "VIRTUAL_ENV=" + act.VirtualEnv},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, act.Apply(tt.base))
		})
	}
}

func TestActivation_ApplyDoesNotModifyBase(t *testing.T) {
	base := []string{"PATH=/usr/bin", "PYTHONHOME=/opt/py"}
	domain.NewEnvironment("/p/.venv").Activation().Apply(base)
	assert.Equal(t, []string{"PATH=/usr/bin", "PYTHONHOME=/opt/py"}, base)
}

func TestSameEnvKey(t *testing.T) {
	assert.True(t, domain.SameEnvKey("PATH", "PATH"))
	assert.False(t, domain.SameEnvKey("PATH", "HOME"))
	assert.Equal(t, runtime.GOOS == "windows", domain.SameEnvKey("Path", "PATH"))
}
