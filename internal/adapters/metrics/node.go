package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mesha/internal/core/ports"
)

// NodeID is the unique identifier for the metrics Graft node.
const NodeID graft.ID = "adapter.metrics"

// CollectorNodeID exposes the concrete collector for the metrics endpoint.
const CollectorNodeID graft.ID = "adapter.metrics.collector"

func init() {
	graft.Register(graft.Node[*Collector]{
		ID:        CollectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Collector, error) {
			return NewCollector(), nil
		},
	})

	graft.Register(graft.Node[ports.Metrics]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{CollectorNodeID},
		Run: func(ctx context.Context) (ports.Metrics, error) {
			c, err := graft.Dep[*Collector](ctx)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	})
}
