package analysis

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mesha/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mesha/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mesha/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mesha/internal/core/ports"
)

// NodeID is the unique identifier for the analysis engine factory Graft node.
const NodeID graft.ID = "engine.analysis"

// Factory builds engines once the host scene and configuration are known.
type Factory struct {
	logger  ports.Logger
	tracer  ports.Tracer
	metrics ports.Metrics
}

// NewFactory creates a Factory sharing the given observability adapters.
func NewFactory(logger ports.Logger, tracer ports.Tracer, metrics ports.Metrics) *Factory {
	return &Factory{logger: logger, tracer: tracer, metrics: metrics}
}

// New creates an engine for provider.
func (f *Factory) New(provider ports.SnapshotProvider, config ports.ConfigProvider) (*Engine, error) {
	return New(provider, config, f.logger, f.tracer, f.metrics)
}

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(log, tracer, m), nil
		},
	})
}
