package bootstrap

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/muleboot/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/muleboot/internal/adapters/launcher"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/muleboot/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/muleboot/internal/adapters/manifest"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/muleboot/internal/adapters/python"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/muleboot/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/muleboot/internal/build"
	"go.trai.ch/muleboot/internal/core/ports"
)

// NodeID is the unique identifier for the bootstrap pipeline Graft node.
const NodeID graft.ID = "engine.bootstrap"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			python.VenvNodeID,
			python.PipNodeID,
			manifest.NodeID,
			cas.NodeID,
			cas.HasherNodeID,
			launcher.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			envs, err := graft.Dep[ports.EnvironmentManager](ctx)
			if err != nil {
				return nil, err
			}

			pip, err := graft.Dep[ports.PackageManager](ctx)
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

			l, err := graft.Dep[ports.Launcher](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewPipeline(log, envs, pip, manifests, store, hasher, l, tracer).
				WithVersion(build.Version), nil
		},
	})
}
