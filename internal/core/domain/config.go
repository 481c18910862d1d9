package domain

import "path/filepath"

// HandoffMode selects how control is transferred to the application.
type HandoffMode string

const (
	// HandoffExec replaces the current process image.
	HandoffExec HandoffMode = "exec"
	// HandoffChild spawns the application, forwards signals and mirrors its exit status.
	HandoffChild HandoffMode = "child"
)

// LogFormat selects the log renderer.
type LogFormat string

const (
	// LogFormatPretty renders colored, human-readable lines.
	LogFormatPretty LogFormat = "pretty"
	// LogFormatJSON renders slog JSON records.
	LogFormatJSON LogFormat = "json"
)

// Config is the resolved bootstrap configuration.
// Paths are relative to Root unless absolute.
type Config struct {
	Root string
	// Executable is the file inspected by the executable-bit advisory.
	// It is empty when it could not be determined.
	Executable string

	Python              string
	EnvDir              string
	Manifest            string
	Entrypoint          string
	Tag                 string
	Handoff             HandoffMode
	Lock                bool
	Debug               bool
	LogFormat           LogFormat
	DefaultRequirements []Requirement
}

// DefaultConfig returns the built-in configuration for root.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:                root,
		Python:              DefaultPython,
		EnvDir:              EnvDirName,
		Manifest:            ManifestFileName,
		Entrypoint:          EntrypointFileName,
		Tag:                 ProductTag,
		Handoff:             HandoffExec,
		Lock:                true,
		LogFormat:           LogFormatPretty,
		DefaultRequirements: DefaultRequirements(),
	}
}

// Path resolves p against Root unless it is absolute.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Root, p)
}

// EnvPath returns the absolute environment directory.
func (c *Config) EnvPath() string { return c.Path(c.EnvDir) }

// ManifestPath returns the absolute manifest path.
func (c *Config) ManifestPath() string { return c.Path(c.Manifest) }

// Environment returns the isolated environment of the project.
func (c *Config) Environment() Environment {
	env := NewEnvironment(c.EnvPath())
	env.Project = c.Root
	return env
}

// EntrypointPath returns the absolute entry point path.
func (c *Config) EntrypointPath() string { return c.Path(c.Entrypoint) }
