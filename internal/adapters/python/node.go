package python

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/muleboot/internal/adapters/shell"
	"go.trai.ch/muleboot/internal/core/ports"
)

const (
	// VenvNodeID is the unique identifier for the environment manager Graft node.
	VenvNodeID graft.ID = "adapter.python.venv"
	// PipNodeID is the unique identifier for the package manager Graft node.
	PipNodeID graft.ID = "adapter.python.pip"
)

func init() {
	graft.Register(graft.Node[ports.EnvironmentManager]{
		ID:        VenvNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentManager, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewVenv(executor), nil
		},
	})

	graft.Register(graft.Node[ports.PackageManager]{
		ID:        PipNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.PackageManager, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewPip(executor), nil
		},
	})
}
