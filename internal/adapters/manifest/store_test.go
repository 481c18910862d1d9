package manifest_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/muleboot/internal/adapters/manifest"
	"go.trai.ch/muleboot/internal/core/domain"
)

const defaultManifest = "PySide6>=6.6,<7\nPyMuPDF>=1.23\npytest>=7.4\n"

func TestStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("writes the default manifest", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), domain.ManifestFileName)

		created, err := manifest.NewStore().Create(path, domain.DefaultManifest())
		require.NoError(t, err)
		assert.True(t, created)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, defaultManifest, string(data))
	})

	t.Run("never overwrites an existing manifest", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), domain.ManifestFileName)
		custom := "# pinned\nrequests==2.31.0\n"
		require.NoError(t, os.WriteFile(path, []byte(custom), domain.FilePerm))

		created, err := manifest.NewStore().Create(path, domain.DefaultManifest())
		require.NoError(t, err)
		assert.False(t, created)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, custom, string(data))
	})

	t.Run("exactly one concurrent writer wins", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), domain.ManifestFileName)
		store := manifest.NewStore()

		const writers = 8
		results := make(chan bool, writers)
		var wg sync.WaitGroup
		for range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := store.Create(path, domain.DefaultManifest())
				assert.NoError(t, err)
				results <- created
			}()
		}
		wg.Wait()
		close(results)

		wins := 0
		for created := range results {
			if created {
				wins++
			}
		}
		assert.Equal(t, 1, wins)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "missing", domain.ManifestFileName)

		_, err := manifest.NewStore().Create(path, domain.DefaultManifest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrManifestWriteFailed.Error())
	})
}

func TestStore_ExistsRead(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, domain.ManifestFileName)
	store := manifest.NewStore()

	ok, err := store.Exists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	content := "PySide6>=6.6,<7\n--index-url https://pypi.example/simple\n"
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))

	ok, err = store.Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	data, m, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	require.Len(t, m.Requirements(), 1)
	assert.Equal(t, "PySide6", m.Requirements()[0].Name)
	assert.Equal(t, []string{"--index-url https://pypi.example/simple"}, m.Unrecognized())
	assert.Equal(t, content, string(m.Bytes()))
}

func TestStore_ReadMissing(t *testing.T) {
	t.Parallel()
	_, _, err := manifest.NewStore().Read(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrManifestReadFailed.Error())
}
