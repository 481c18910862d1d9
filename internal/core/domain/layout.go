package domain

import (
	"path/filepath"
	"runtime"
)

const (
	// ProductTag prefixes every informational message.
	ProductTag = "BidMule"

	// ToolName is the name of the bootstrap binary.
	ToolName = "muleboot"

	// EnvDirName is the default isolated environment directory.
	EnvDirName = ".venv"

	// ManifestFileName is the default dependency manifest.
	ManifestFileName = "requirements.txt"

	// EntrypointFileName is the default application entry point.
	EntrypointFileName = "app.py"

	// ConfigFileName is the optional project configuration file.
	ConfigFileName = "muleboot.yaml"

	// GlobalConfigFileName is the name of the per-user configuration file
	// inside the XDG config directory.
	GlobalConfigFileName = "config.yaml"

	// LockFileName is the advisory lock taken for the duration of a bootstrap.
	LockFileName = ".muleboot.lock"

	// StateDirName is the directory inside the environment holding muleboot metadata.
	StateDirName = ".muleboot"

	// StateFileName is the bootstrap record file.
	StateFileName = "state.json"

	// DefaultPython is the interpreter used to create the environment.
	DefaultPython = "python3"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// EnvBinDir returns the directory holding executables inside an environment.
func EnvBinDir(envDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(envDir, "Scripts")
	}
	return filepath.Join(envDir, "bin")
}

// EnvPython returns the interpreter path inside an environment.
func EnvPython(envDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(EnvBinDir(envDir), "python.exe")
	}
	return filepath.Join(EnvBinDir(envDir), "python")
}

// StatePath returns the bootstrap record path for an environment.
// It joins the environment, .muleboot and state.json.
func StatePath(envDir string) string {
	return filepath.Join(envDir, StateDirName, StateFileName)
}

// LockPath returns the lock file path under root.
func LockPath(root string) string {
	return filepath.Join(root, LockFileName)
}
