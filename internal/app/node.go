package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mesha/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mesha/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mesha/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/mesha/internal/adapters/scene"   //nolint:depguard // Wired in app layer
	"go.trai.ch/mesha/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/mesha/internal/core/ports"
	"go.trai.ch/mesha/internal/engine/analysis"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the entry point needs after wiring.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scene.NodeID,
			analysis.NodeID,
			logger.NodeID,
			watcher.NodeID,
			metrics.CollectorNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	sceneLoader, err := graft.Dep[ports.SceneLoader](ctx)
	if err != nil {
		return nil, err
	}

	factory, err := graft.Dep[*analysis.Factory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	collector, err := graft.Dep[*metrics.Collector](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, sceneLoader, factory, log, w, collector), nil
}
