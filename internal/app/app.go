// Package app implements the application layer for muleboot.
package app

import (
	"context"
	"errors"

	"go.trai.ch/muleboot/internal/core/domain"
	"go.trai.ch/muleboot/internal/core/ports"
	"go.trai.ch/muleboot/internal/engine/bootstrap"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *bootstrap.Pipeline
	locker       ports.Locker
	logger       ports.Logger
	envs         ports.EnvironmentManager
	manifests    ports.ManifestStore
	state        ports.StateStore
	hasher       ports.Hasher
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	pipeline *bootstrap.Pipeline,
	locker ports.Locker,
	logger ports.Logger,
	envs ports.EnvironmentManager,
	manifests ports.ManifestStore,
	state ports.StateStore,
	hasher ports.Hasher,
) *App {
	return &App{
		configLoader: loader,
		pipeline:     pipeline,
		locker:       locker,
		logger:       logger,
		envs:         envs,
		manifests:    manifests,
		state:        state,
		hasher:       hasher,
	}
}

// configurableLogger is implemented by loggers whose output can follow the
// loaded configuration.
type configurableLogger interface {
	SetDebug(enable bool)
	SetJSON(enable bool)
	SetTag(tag string)
}

// Run bootstraps the environment and hands control to the application.
func (a *App) Run(ctx context.Context) error {
	cfg, err := a.load()
	if err != nil {
		return err
	}

	release := func() error { return nil }
	if cfg.Lock {
		lockPath := domain.LockPath(cfg.Root)
		a.logger.Debug("acquiring " + lockPath)

		release, err = a.locker.Lock(ctx, lockPath)
		if err != nil {
			return domain.NewStepError(domain.StepResolveRoot, domain.ErrLockFailed, err)
		}
		// Normally released before the handoff. Release is idempotent.
		defer func() { _ = release() }()
	}

	return a.pipeline.Run(ctx, cfg, release)
}

// load reads the configuration and applies its logging settings.
func (a *App) load() (*domain.Config, error) {
	cfg, err := a.configLoader.Load()
	if err != nil {
		var stepErr *domain.StepError
		if errors.As(err, &stepErr) {
			return nil, err
		}
		return nil, domain.NewStepError(domain.StepResolveRoot, domain.ErrRootResolveFailed, err)
	}

	if l, ok := a.logger.(configurableLogger); ok {
		l.SetTag(cfg.Tag)
		l.SetJSON(cfg.LogFormat == domain.LogFormatJSON)
		l.SetDebug(cfg.Debug)
	}

	return cfg, nil
}
