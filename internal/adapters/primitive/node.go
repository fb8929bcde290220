package primitive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mesha/internal/core/ports"
)

// NodeID is the unique identifier for the shape mesher Graft node.
const NodeID graft.ID = "adapter.primitive"

func init() {
	graft.Register(graft.Node[ports.ShapeMesher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ShapeMesher, error) {
			return NewGenerator(), nil
		},
	})
}
