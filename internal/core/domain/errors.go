package domain

import "go.trai.ch/zerr"

var (
	// ErrRootResolveFailed is returned when the project root cannot be derived from the executable location.
	ErrRootResolveFailed = zerr.New("failed to resolve project root")

	// ErrEnvironmentCreateFailed is returned when the isolated environment cannot be created.
	ErrEnvironmentCreateFailed = zerr.New("failed to create isolated environment")

	// ErrEnvironmentNotFound is returned when an environment is expected but its interpreter is missing.
	ErrEnvironmentNotFound = zerr.New("isolated environment not found")

	// ErrPipUpgradeFailed is returned when the package manager cannot upgrade itself.
	ErrPipUpgradeFailed = zerr.New("failed to upgrade package manager")

	// ErrManifestReadFailed is returned when the dependency manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read dependency manifest")

	// ErrManifestWriteFailed is returned when the default dependency manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write dependency manifest")

	// ErrInvalidRequirement is returned when a requirement line cannot be parsed.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrInstallFailed is returned when installing the manifest's dependencies fails.
	ErrInstallFailed = zerr.New("failed to install dependencies")

	// ErrEntrypointNotFound is returned when the application entry point does not exist.
	ErrEntrypointNotFound = zerr.New("application entry point not found")

	// ErrHandoffFailed is returned when control cannot be transferred to the application.
	ErrHandoffFailed = zerr.New("failed to hand off to application")

	// ErrLockFailed is returned when the bootstrap lock cannot be acquired or released.
	ErrLockFailed = zerr.New("failed to acquire bootstrap lock")

	// ErrConfigReadFailed is returned when a config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the merged configuration is inconsistent.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrPathOutsideRoot is returned when a configured path escapes the project root.
	ErrPathOutsideRoot = zerr.New("path is outside project root")

	// ErrStateReadFailed is returned when the bootstrap record cannot be read.
	ErrStateReadFailed = zerr.New("failed to read bootstrap record")

	// ErrStateWriteFailed is returned when the bootstrap record cannot be written.
	ErrStateWriteFailed = zerr.New("failed to write bootstrap record")

	// ErrCommandFailed is returned when a subprocess exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")
)
