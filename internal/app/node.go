package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/muleboot/internal/adapters/cas"      //nolint:depguard // Wired in app layer
	"go.trai.ch/muleboot/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/muleboot/internal/adapters/lock"     //nolint:depguard // Wired in app layer
	"go.trai.ch/muleboot/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/muleboot/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/muleboot/internal/adapters/python"   //nolint:depguard // Wired in app layer
	"go.trai.ch/muleboot/internal/core/ports"
	"go.trai.ch/muleboot/internal/engine/bootstrap"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			bootstrap.NodeID,
			lock.NodeID,
			logger.NodeID,
			python.VenvNodeID,
			manifest.NodeID,
			cas.NodeID,
			cas.HasherNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	pipeline, err := graft.Dep[*bootstrap.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	locker, err := graft.Dep[ports.Locker](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	envs, err := graft.Dep[ports.EnvironmentManager](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.StateStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, pipeline, locker, log, envs, manifests, store, hasher), nil
}
