package scene

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mesha/internal/adapters/primitive" //nolint:depguard // Wired in scene wiring
	"go.trai.ch/mesha/internal/core/ports"
)

// NodeID is the unique identifier for the scene loader Graft node.
const NodeID graft.ID = "adapter.scene_loader"

func init() {
	graft.Register(graft.Node[ports.SceneLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{primitive.NodeID},
		Run: func(ctx context.Context) (ports.SceneLoader, error) {
			mesher, err := graft.Dep[ports.ShapeMesher](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(mesher), nil
		},
	})
}
