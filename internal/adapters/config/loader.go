// Package config loads the analysis configuration from mesha.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"

	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up during discovery.
const FileName = "mesha.yaml"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for cwd. A non-empty path is read directly
// and must exist; otherwise mesha.yaml is searched from cwd upwards and the
// defaults apply when none is found. The returned path is empty for defaults.
func (l *Loader) Load(cwd, path string) (domain.AnalysisConfig, string, error) {
	if path == "" {
		path = findConfiguration(cwd)
		if path == "" {
			return domain.DefaultConfig(), "", nil
		}
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	var file File
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return domain.AnalysisConfig{}, "", err
	}

	cfg, err := l.build(&file)
	if err != nil {
		return domain.AnalysisConfig{}, "", zerr.With(err, "path", path)
	}
	return cfg, path, nil
}

func findConfiguration(cwd string) string {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is provided by the user or found by discovery
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, "config file does not exist"), "path", path)
		}
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, "cannot load config"), "path", path), "cause", err.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "cannot load config"), "path", path), "cause", parseErr.Error())
	}
	return nil
}

func (l *Loader) build(file *File) (domain.AnalysisConfig, error) {
	if file.Version != "" && file.Version != "1" {
		return domain.AnalysisConfig{}, zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, "invalid config"), "version", file.Version)
	}

	cfg := domain.DefaultConfig()
	setInt(&cfg.ObjectCapacity, file.Cache.Objects)
	setFloat(&cfg.Classifier.PlanarThreshold, file.Planarity.Threshold)
	setFloat(&cfg.Classifier.AreaEpsilon, file.Degeneracy.AreaEpsilon)
	setFloat(&cfg.Classifier.PositionEpsilon, file.Degeneracy.PositionEpsilon)
	setFloat(&cfg.Classifier.CollinearEpsilon, file.Degeneracy.CollinearEpsilon)
	if file.Degeneracy.Collinear != nil {
		cfg.Classifier.CollinearCheck = *file.Degeneracy.Collinear
	}
	setFloat(&cfg.Classifier.FaceOffset, file.Display.FaceOffset)
	setFloat(&cfg.TransformEpsilon, file.Invalidation.TransformEpsilon)
	setFloat(&cfg.Display.VertexRadius, file.Display.VertexRadius)
	setFloat(&cfg.Display.EdgeWidth, file.Display.EdgeWidth)

	split, err := domain.ParseQuadSplit(file.Triangulation.QuadSplit)
	if err != nil {
		return domain.AnalysisConfig{}, err
	}
	cfg.Classifier.QuadSplit = split

	names := make([]string, 0, len(file.Features))
	for name := range file.Features {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		f, err := domain.ParseFeatureID(name)
		if err != nil {
			return domain.AnalysisConfig{}, err
		}
		dto := file.Features[name]
		fc := cfg.Features[f]
		if dto.Enabled != nil {
			fc.Enabled = *dto.Enabled
		}
		if dto.Color != nil {
			color, err := parseColor(dto.Color)
			if err != nil {
				return domain.AnalysisConfig{}, zerr.With(err, "feature", name)
			}
			fc.Color = color
		}
		cfg.Features[f] = fc
	}

	if err := cfg.Validate(); err != nil {
		return domain.AnalysisConfig{}, err
	}
	if len(cfg.EnabledFeatures()) == 0 {
		l.Logger.Warn(fmt.Sprintf("every feature is disabled in %s, nothing will be analyzed", FileName))
	}
	return cfg, nil
}

func parseColor(c []float64) (domain.Color, error) {
	if len(c) != 3 && len(c) != 4 {
		return domain.Color{}, zerr.With(zerr.Wrap(domain.ErrInvalidDisplay, "color needs 3 or 4 components"), "components", len(c))
	}
	out := domain.Color{0, 0, 0, 1}
	for i, v := range c {
		if v < 0 || v > 1 {
			return domain.Color{}, zerr.With(zerr.Wrap(domain.ErrInvalidDisplay, "color component out of [0, 1]"), "value", v)
		}
		out[i] = v
	}
	return out, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Provider is a ports.ConfigProvider whose configuration can be swapped at runtime.
type Provider struct {
	current atomic.Pointer[domain.AnalysisConfig]
}

// NewProvider creates a Provider serving cfg.
func NewProvider(cfg domain.AnalysisConfig) *Provider {
	p := &Provider{}
	p.Set(cfg)
	return p
}

// Config returns the configuration in effect.
func (p *Provider) Config() domain.AnalysisConfig {
	return *p.current.Load()
}

// Set replaces the configuration. Callers must not modify cfg afterwards.
func (p *Provider) Set(cfg domain.AnalysisConfig) {
	p.current.Store(&cfg)
}
