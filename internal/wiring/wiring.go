// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mesha/internal/adapters/config"
	_ "go.trai.ch/mesha/internal/adapters/logger"
	_ "go.trai.ch/mesha/internal/adapters/metrics"
	_ "go.trai.ch/mesha/internal/adapters/primitive"
	_ "go.trai.ch/mesha/internal/adapters/scene"
	_ "go.trai.ch/mesha/internal/adapters/telemetry"
	_ "go.trai.ch/mesha/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/mesha/internal/app"
	_ "go.trai.ch/mesha/internal/engine/analysis"
)
