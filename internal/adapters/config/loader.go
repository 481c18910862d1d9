// Package config provides the layered configuration loader for muleboot.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/muleboot/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader.
//
// Layers are applied in increasing precedence: built-in defaults, the global
// config file, the project muleboot.yaml and MULEBOOT_* environment variables.
type Loader struct {
	Logger     ports.Logger
	fs         FileSystem
	getenv     func(string) string
	executable func() (string, error)
	globalPath string
}

// Option configures a Loader.
type Option func(*Loader)

// WithFileSystem replaces the filesystem used to read config files.
func WithFileSystem(fsys FileSystem) Option {
	return func(l *Loader) { l.fs = fsys }
}

// WithGetenv replaces the environment lookup.
func WithGetenv(fn func(string) string) Option {
	return func(l *Loader) { l.getenv = fn }
}

// WithExecutable replaces the lookup of the running binary.
func WithExecutable(fn func() (string, error)) Option {
	return func(l *Loader) { l.executable = fn }
}

// WithGlobalPath sets the global config file location. An empty path disables it.
func WithGlobalPath(path string) Option {
	return func(l *Loader) { l.globalPath = path }
}

// GlobalPath returns the default location of the per-user config file.
func GlobalPath() string {
	return filepath.Join(xdg.ConfigHome, domain.ToolName, domain.GlobalConfigFileName)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger, opts ...Option) *Loader {
	l := &Loader{
		Logger:     logger,
		fs:         NewOSFS(),
		getenv:     os.Getenv,
		executable: os.Executable,
		globalPath: GlobalPath(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves the project root and returns the merged configuration.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.readFile(l.globalPath)
	if err != nil {
		return nil, err
	}

	exe, exeErr := l.resolveExecutable()

	root, err := l.resolveRoot(global, exe, exeErr)
	if err != nil {
		return nil, failure(domain.ErrRootResolveFailed, err)
	}

	project, err := l.readFile(filepath.Join(root, domain.ConfigFileName))
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultConfig(root)
	cfg.Executable = exe

	if global != nil && global.Launcher != nil {
		l.Logger.Warn("'launcher' is only honored in " + domain.ConfigFileName)
		global.Launcher = nil
	}
	if project != nil && project.Root != nil {
		l.Logger.Warn("'root' defined in " + domain.ConfigFileName + " has no effect")
	}

	for _, layer := range []*File{global, project} {
		if err := apply(cfg, layer); err != nil {
			return nil, failure(domain.ErrInvalidConfig, err)
		}
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, failure(domain.ErrInvalidConfig, err)
	}

	if err := validate(cfg); err != nil {
		return nil, failure(domain.ErrInvalidConfig, err)
	}
	cfg.Python = resolveInterpreter(cfg)

	return cfg, nil
}

// resolveExecutable returns the running binary with symlinks resolved.
func (l *Loader) resolveExecutable() (string, error) {
	exe, err := l.executable()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate executable")
	}
	resolved, err := l.fs.EvalSymlinks(exe)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve executable"), "path", exe)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve executable"), "path", resolved)
	}
	return abs, nil
}

func (l *Loader) resolveRoot(global *File, exe string, exeErr error) (string, error) {
	candidate := l.getenv(EnvRoot)
	source := EnvRoot
	if candidate == "" && global != nil && global.Root != nil {
		candidate = *global.Root
		source = l.globalPath
	}

	if candidate == "" {
		if exeErr != nil {
			return "", exeErr
		}
		return filepath.Dir(exe), nil
	}

	if !filepath.IsAbs(candidate) {
		err := zerr.With(zerr.New("root must be an absolute path"), "root", candidate)
		return "", zerr.With(err, "source", source)
	}

	root, err := l.fs.EvalSymlinks(candidate)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to resolve root"), "root", candidate)
		return "", zerr.With(err, "source", source)
	}
	return filepath.Clean(root), nil
}

// readFile reads and parses an optional config file. A missing file yields nil.
func (l *Loader) readFile(path string) (*File, error) {
	if path == "" {
		return nil, nil
	}

	data, err := l.fs.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
		return nil, failure(domain.ErrConfigReadFailed, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
		return nil, failure(domain.ErrConfigParseFailed, err)
	}
	return &file, nil
}

func apply(cfg *domain.Config, f *File) error {
	if f == nil {
		return nil
	}

	setString(&cfg.Python, f.Python)
	setString(&cfg.EnvDir, f.EnvDir)
	setString(&cfg.Manifest, f.Manifest)
	setString(&cfg.Entrypoint, f.Entrypoint)
	setString(&cfg.Tag, f.Tag)

	if f.Launcher != nil && *f.Launcher != "" {
		cfg.Executable = cfg.Path(*f.Launcher)
	}
	if f.Handoff != nil {
		cfg.Handoff = domain.HandoffMode(strings.TrimSpace(*f.Handoff))
	}
	if f.Log != nil {
		cfg.LogFormat = domain.LogFormat(strings.TrimSpace(*f.Log))
	}
	if f.Lock != nil {
		cfg.Lock = *f.Lock
	}
	if f.Debug != nil {
		cfg.Debug = *f.Debug
	}

	if len(f.DefaultRequirements) > 0 {
		reqs := make([]domain.Requirement, 0, len(f.DefaultRequirements))
		for _, line := range f.DefaultRequirements {
			req, err := domain.ParseRequirement(line)
			if err != nil {
				return err
			}
			reqs = append(reqs, req)
		}
		cfg.DefaultRequirements = reqs
	}

	return nil
}

func (l *Loader) applyEnv(cfg *domain.Config) error {
	for key, dst := range map[string]*string{
		EnvPython:     &cfg.Python,
		EnvEnvDir:     &cfg.EnvDir,
		EnvManifest:   &cfg.Manifest,
		EnvEntrypoint: &cfg.Entrypoint,
	} {
		if v := l.getenv(key); v != "" {
			*dst = v
		}
	}

	if v := l.getenv(EnvHandoff); v != "" {
		cfg.Handoff = domain.HandoffMode(strings.TrimSpace(v))
	}
	if v := l.getenv(EnvLog); v != "" {
		cfg.LogFormat = domain.LogFormat(strings.TrimSpace(v))
	}
	if v := l.getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "invalid boolean"), "variable", EnvDebug)
		}
		cfg.Debug = debug
	}

	return nil
}

func validate(cfg *domain.Config) error {
	if strings.TrimSpace(cfg.Python) == "" {
		return zerr.With(zerr.New("interpreter must not be empty"), "field", "python")
	}

	for _, f := range []struct{ name, path string }{
		{"envDir", cfg.EnvDir},
		{"manifest", cfg.Manifest},
		{"entrypoint", cfg.Entrypoint},
	} {
		if err := insideRoot(cfg.Root, f.path); err != nil {
			return zerr.With(err, "field", f.name)
		}
	}

	switch cfg.Handoff {
	case domain.HandoffExec, domain.HandoffChild:
	default:
		return zerr.With(zerr.New("handoff must be exec or child"), "handoff", string(cfg.Handoff))
	}

	switch cfg.LogFormat {
	case domain.LogFormatPretty, domain.LogFormatJSON:
	default:
		return zerr.With(zerr.New("log must be pretty or json"), "log", string(cfg.LogFormat))
	}

	return nil
}

// resolveInterpreter anchors an interpreter given as a path to the root.
// A bare command name is left for the PATH lookup.
func resolveInterpreter(cfg *domain.Config) string {
	if strings.ContainsRune(cfg.Python, '/') || strings.ContainsRune(cfg.Python, filepath.Separator) {
		return cfg.Path(cfg.Python)
	}
	return cfg.Python
}

// insideRoot rejects empty paths and relative paths that climb out of root.
// Absolute paths are the operator's explicit choice and are accepted as is.
func insideRoot(root, p string) error {
	if strings.TrimSpace(p) == "" {
		return zerr.New("path must not be empty")
	}
	if filepath.IsAbs(p) {
		return nil
	}
	rel, err := filepath.Rel(root, filepath.Join(root, p))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(zerr.Wrap(domain.ErrPathOutsideRoot, "relative path climbs out of the root"), "path", p)
	}
	if rel == "." {
		return zerr.With(zerr.New("path must not be the project root"), "path", p)
	}
	return nil
}

func setString(dst, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

// failure tags a loading error with the sentinel the bootstrap reports.
// Loading the configuration is part of resolving the project root.
func failure(kind, err error) error {
	var stepErr *domain.StepError
	if errors.As(err, &stepErr) {
		return err
	}
	return domain.NewStepError(domain.StepResolveRoot, kind, err)
}
