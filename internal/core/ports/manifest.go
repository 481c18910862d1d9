package ports

import "go.trai.ch/muleboot/internal/core/domain"

// ManifestStore reads and creates dependency manifests.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestStore interface {
	// Exists reports whether a manifest is present at path.
	Exists(path string) (bool, error)

	// Read returns the raw manifest bytes and their parsed form.
	Read(path string) ([]byte, *domain.Manifest, error)

	// Create writes manifest to path unless a file already exists there.
	// It reports whether the file was written by this call.
	Create(path string, manifest *domain.Manifest) (bool, error)
}
