// Package manifest reads and creates dependency manifests on disk.
package manifest

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ManifestStore on the local filesystem.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Exists reports whether a manifest is present at path.
func (s *Store) Exists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	return true, nil
}

// Read returns the raw manifest bytes and their parsed form.
func (s *Store) Read(path string) ([]byte, *domain.Manifest, error) {
	//nolint:gosec // path is derived from the resolved project root
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	return data, domain.ParseManifest(data), nil
}

// Create writes manifest to path with O_EXCL, so a file created concurrently
// by another process is never replaced. It reports false when the file
// already existed.
func (s *Store) Create(path string, manifest *domain.Manifest) (bool, error) {
	//nolint:gosec // path is derived from the resolved project root
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.FilePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	if _, err := f.Write(manifest.Bytes()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return false, zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return false, zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return true, nil
}
