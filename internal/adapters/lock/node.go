package lock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/muleboot/internal/core/ports"
)

// NodeID is the unique identifier for the locker Graft node.
const NodeID graft.ID = "adapter.locker"

func init() {
	graft.Register(graft.Node[ports.Locker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Locker, error) {
			return NewLocker(), nil
		},
	})
}
