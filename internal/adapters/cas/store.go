// Package cas stores the bootstrap record and fingerprints manifest content.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.StateStore with one JSON file per environment.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the bootstrap record kept in the environment at envDir.
func (s *Store) Get(envDir string) (*domain.BootstrapRecord, error) {
	filename := domain.StatePath(envDir)
	//nolint:gosec // Path is constructed from the resolved environment directory
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", filename)
	}

	var record domain.BootstrapRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", filename)
	}

	return &record, nil
}

// Put stores the bootstrap record. The file is replaced atomically.
func (s *Store) Put(envDir string, record domain.BootstrapRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStateWriteFailed.Error())
	}

	filename := domain.StatePath(envDir)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, domain.StateFileName+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", filename)
	}

	return nil
}
