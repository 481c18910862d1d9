// Package bootstrap implements the fail-fast environment bootstrap pipeline.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/muleboot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pipeline runs the bootstrap steps in order and stops at the first failure.
type Pipeline struct {
	logger    ports.Logger
	envs      ports.EnvironmentManager
	pip       ports.PackageManager
	manifests ports.ManifestStore
	state     ports.StateStore
	hasher    ports.Hasher
	launcher  ports.Launcher
	tracer    ports.Tracer

	stat    func(string) (fs.FileInfo, error)
	environ func() []string
	now     func() time.Time
	version string
}

// NewPipeline creates a new Pipeline with the given dependencies.
func NewPipeline(
	logger ports.Logger,
	envs ports.EnvironmentManager,
	pip ports.PackageManager,
	manifests ports.ManifestStore,
	state ports.StateStore,
	hasher ports.Hasher,
	launcher ports.Launcher,
	tracer ports.Tracer,
) *Pipeline {
	return &Pipeline{
		logger:    logger,
		envs:      envs,
		pip:       pip,
		manifests: manifests,
		state:     state,
		hasher:    hasher,
		launcher:  launcher,
		tracer:    tracer,
		stat:      os.Stat,
		environ:   os.Environ,
		now:       time.Now,
		version:   "dev",
	}
}

// WithEnviron replaces the base process environment handed to subprocesses.
func (p *Pipeline) WithEnviron(fn func() []string) *Pipeline {
	p.environ = fn
	return p
}

// WithClock replaces the clock used for bootstrap records.
func (p *Pipeline) WithClock(fn func() time.Time) *Pipeline {
	p.now = fn
	return p
}

// WithVersion sets the tool version stored in bootstrap records.
func (p *Pipeline) WithVersion(version string) *Pipeline {
	p.version = version
	return p
}

// state is the data passed from one step to the next.
type state struct {
	cfg           *domain.Config
	env           domain.Environment
	activated     []string
	beforeHandoff func() error
	// span belongs to the running step.
	span ports.Span
}

type step struct {
	name domain.StepName
	kind error
	run  func(ctx context.Context, s *state) error
}

func (p *Pipeline) steps() []step {
	return []step{
		{domain.StepResolveRoot, domain.ErrRootResolveFailed, p.resolveRoot},
		{domain.StepCheckExecutable, nil, p.checkExecutable},
		{domain.StepEnsureEnvironment, domain.ErrEnvironmentCreateFailed, p.ensureEnvironment},
		{domain.StepActivate, domain.ErrEnvironmentNotFound, p.activate},
		{domain.StepUpgradePip, domain.ErrPipUpgradeFailed, p.upgradePip},
		{domain.StepEnsureManifest, domain.ErrManifestWriteFailed, p.ensureManifest},
		{domain.StepInstall, domain.ErrInstallFailed, p.install},
		{domain.StepHandoff, domain.ErrHandoffFailed, p.handoff},
	}
}

// Run executes every step for cfg. beforeHandoff, when set, runs right before
// control is transferred to the application.
//
// In exec mode a successful Run does not return. Otherwise it returns nil, a
// *domain.AppExit carrying the application's exit status, or the
// *domain.StepError of the first failing step.
func (p *Pipeline) Run(ctx context.Context, cfg *domain.Config, beforeHandoff func() error) error {
	s := &state{
		cfg:           cfg,
		env:           cfg.Environment(),
		beforeHandoff: beforeHandoff,
	}

	for _, st := range p.steps() {
		if err := ctx.Err(); err != nil {
			return domain.NewStepError(st.name, st.kind, err)
		}
		if err := p.runStep(ctx, st, s); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) runStep(ctx context.Context, st step, s *state) error {
	ctx, span := p.tracer.Start(ctx, string(st.name))
	defer span.End()
	s.span = span

	err := st.run(ctx, s)
	if err == nil {
		return nil
	}
	span.RecordError(err)

	var appExit *domain.AppExit
	if errors.As(err, &appExit) {
		span.SetAttribute("exit_code", appExit.Code)
		return appExit
	}

	var stepErr *domain.StepError
	if !errors.As(err, &stepErr) {
		stepErr = domain.NewStepError(st.name, st.kind, err)
	}
	span.SetAttribute("exit_code", stepErr.ExitCode)
	return stepErr
}

func (p *Pipeline) resolveRoot(_ context.Context, s *state) error {
	info, err := p.stat(s.cfg.Root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "project root is not accessible"), "root", s.cfg.Root)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("project root is not a directory"), "root", s.cfg.Root)
	}
	p.logger.Debug("project root: " + s.cfg.Root)
	return nil
}

// checkExecutable only advises. It never fails the bootstrap.
func (p *Pipeline) checkExecutable(_ context.Context, s *state) error {
	path := s.cfg.Executable
	if path == "" || runtime.GOOS == "windows" {
		return nil
	}

	info, err := p.stat(path)
	if err != nil {
		p.logger.Debug(fmt.Sprintf("cannot inspect %s: %v", path, err))
		return nil
	}
	if info.Mode().Perm()&0o111 == 0 {
		p.logger.Info(fmt.Sprintf("%s is not executable. Fix it with: chmod +x %s", filepath.Base(path), path))
	}
	return nil
}

func (p *Pipeline) ensureEnvironment(ctx context.Context, s *state) error {
	s.span.SetAttribute("env_dir", s.env.Dir)
	exists, err := p.envs.Exists(s.env)
	if err != nil {
		return err
	}
	if exists {
		p.logger.Debug("environment exists at " + s.env.Dir + ", skipping creation")
		return nil
	}

	p.logger.Info("Creating isolated environment in " + s.env.Dir)
	return p.envs.Create(ctx, s.cfg.Python, s.env, p.environ())
}

func (p *Pipeline) activate(_ context.Context, s *state) error {
	if _, err := p.stat(s.env.Python); err != nil {
		err = zerr.With(zerr.Wrap(err, "environment has no interpreter"), "python", s.env.Python)
		return zerr.With(err, "hint", "remove "+s.env.Dir+" and run again")
	}

	activation := s.env.Activation()
	s.activated = activation.Apply(p.environ())

	s.span.SetAttribute("virtual_env", activation.VirtualEnv)
	s.span.SetAttribute("path_prefix", activation.PathPrefix)
	return nil
}

func (p *Pipeline) upgradePip(ctx context.Context, s *state) error {
	return p.pip.Upgrade(ctx, s.env, s.activated)
}

func (p *Pipeline) ensureManifest(_ context.Context, s *state) error {
	path := s.cfg.ManifestPath()

	exists, err := p.manifests.Exists(path)
	if err != nil {
		return err
	}
	if exists {
		p.logger.Debug("manifest exists at " + path)
		return nil
	}

	created, err := p.manifests.Create(path, domain.NewManifest(s.cfg.DefaultRequirements))
	if err != nil {
		return err
	}
	if !created {
		p.logger.Debug("manifest appeared at " + path + ", keeping it")
		return nil
	}

	p.logger.Info("Created default " + filepath.Base(path))
	return nil
}

func (p *Pipeline) install(ctx context.Context, s *state) error {
	path := s.cfg.ManifestPath()

	data, manifest, err := p.manifests.Read(path)
	if err != nil {
		return domain.NewStepError(domain.StepInstall, domain.ErrManifestReadFailed, err)
	}
	s.span.SetAttribute("manifest", path)
	s.span.SetAttribute("requirements", len(manifest.Requirements()))
	for _, line := range manifest.Unrecognized() {
		p.logger.Debug("passing manifest line to pip as is: " + line)
	}

	if err := p.pip.Install(ctx, s.env, path, s.activated); err != nil {
		return err
	}

	p.record(s, data, manifest)
	return nil
}

// record stores the bootstrap record. A failure is reported but does not stop
// the bootstrap.
func (p *Pipeline) record(s *state, data []byte, manifest *domain.Manifest) {
	rec := domain.BootstrapRecord{
		ManifestHash: p.hasher.Sum(data),
		Python:       s.env.Python,
		Requirements: len(manifest.Requirements()),
		ToolVersion:  p.version,
		InstalledAt:  p.now().UTC(),
	}
	if err := p.state.Put(s.env.Dir, rec); err != nil {
		p.logger.Warn(fmt.Sprintf("could not save bootstrap record: %v", err))
	}
}

func (p *Pipeline) handoff(ctx context.Context, s *state) error {
	entrypoint := s.cfg.EntrypointPath()
	if _, err := p.stat(entrypoint); err != nil {
		err = zerr.With(zerr.Wrap(err, "cannot stat entry point"), "path", entrypoint)
		return domain.NewStepError(domain.StepHandoff, domain.ErrEntrypointNotFound, err)
	}

	if s.beforeHandoff != nil {
		if err := s.beforeHandoff(); err != nil {
			return err
		}
	}

	p.logger.Debug(fmt.Sprintf("handing off to %s %s (%s mode)", s.env.Python, s.cfg.Entrypoint, s.cfg.Handoff))

	return p.launcher.Handoff(ctx, domain.Handoff{
		Mode: s.cfg.Handoff,
		Dir:  s.cfg.Root,
		Args: []string{s.env.Python, s.cfg.Entrypoint},
		Env:  s.activated,
	})
}
