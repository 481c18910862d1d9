package domain

import "time"

// BootstrapRecord describes the last successful dependency installation.
type BootstrapRecord struct {
	ManifestHash string    `json:"manifest_hash,omitzero"`
	Python       string    `json:"python,omitzero"`
	Requirements int       `json:"requirements,omitzero"`
	ToolVersion  string    `json:"tool_version,omitzero"`
	InstalledAt  time.Time `json:"installed_at,omitzero"`
}
