package ports

import "go.trai.ch/mesha/internal/core/domain"

//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks

// ConfigProvider exposes the current analysis configuration.
type ConfigProvider interface {
	// Config returns the configuration in effect. It is read on every query.
	Config() domain.AnalysisConfig
}

// ConfigLoader discovers and parses the configuration file.
type ConfigLoader interface {
	// Load resolves the configuration for cwd. A non-empty path bypasses discovery.
	// When no file is found the defaults are returned.
	Load(cwd, path string) (domain.AnalysisConfig, string, error)
}
