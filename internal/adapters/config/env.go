package config

// Environment variables that override every file layer.
const (
	EnvRoot       = "MULEBOOT_ROOT"
	EnvPython     = "MULEBOOT_PYTHON"
	EnvEnvDir     = "MULEBOOT_ENV_DIR"
	EnvManifest   = "MULEBOOT_MANIFEST"
	EnvEntrypoint = "MULEBOOT_ENTRYPOINT"
	EnvHandoff    = "MULEBOOT_HANDOFF"
	EnvDebug      = "MULEBOOT_DEBUG"
	EnvLog        = "MULEBOOT_LOG"
)
