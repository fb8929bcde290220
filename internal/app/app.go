// Package app implements the application layer for mesha.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/mesha/internal/adapters/config"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/core/ports"
	"go.trai.ch/mesha/internal/engine/analysis"
	"go.trai.ch/mesha/internal/ui/report"
	"go.trai.ch/zerr"
)

// DefaultScenePath is the scene file used when none is given.
const DefaultScenePath = "scene.yaml"

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// MetricsServer exposes collected metrics over HTTP until ctx is done.
type MetricsServer interface {
	Serve(ctx context.Context, addr string) error
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	sceneLoader  ports.SceneLoader
	factory      *analysis.Factory
	logger       ports.Logger
	watcher      ports.Watcher
	metrics      MetricsServer
	stdout       io.Writer
	stderr       io.Writer
	teaOptions   []tea.ProgramOption
	debounce     time.Duration
}

// New creates a new App instance writing to the process streams.
func New(
	configLoader ports.ConfigLoader,
	sceneLoader ports.SceneLoader,
	factory *analysis.Factory,
	log ports.Logger,
	w ports.Watcher,
	metrics MetricsServer,
) *App {
	return &App{
		configLoader: configLoader,
		sceneLoader:  sceneLoader,
		factory:      factory,
		logger:       log,
		watcher:      w,
		metrics:      metrics,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		debounce:     defaultDebounce,
	}
}

// WithOutput redirects reports and renderer output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// AnalyzeOptions configures the Analyze method.
type AnalyzeOptions struct {
	ScenePath  string
	ConfigPath string
	// Objects restricts the report to the named objects. Empty means every mesh object.
	Objects []string
	// Features restricts the queried features. Empty means the enabled ones.
	Features []string
	Format   string
}

// Analyze runs one analysis round over a scene and writes the report.
func (a *App) Analyze(ctx context.Context, opts AnalyzeOptions) error {
	switch opts.Format {
	case "", FormatText, FormatJSON:
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidFormat, "cannot write report"), "format", opts.Format)
	}

	features, err := parseFeatures(opts.Features)
	if err != nil {
		return err
	}

	sess, err := a.open(opts.ScenePath, opts.ConfigPath)
	if err != nil {
		return err
	}

	targets, err := selectObjects(sess.scene.Objects(), opts.Objects)
	if err != nil {
		return err
	}

	rep, err := sess.round(ctx, 1, targets, features)
	if err != nil {
		return err
	}

	if opts.Format == FormatJSON {
		return report.WriteJSON(a.stdout, &rep)
	}
	return report.NewText(a.stdout).Report(&rep)
}

// FeaturesOptions configures the Features method.
type FeaturesOptions struct {
	ConfigPath string
}

// Features lists the feature registry with the configured enable state and colors.
func (a *App) Features(_ context.Context, opts FeaturesOptions) error {
	cfg, _, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	return report.NewText(a.stdout).Features(domain.Features(), &cfg)
}

func (a *App) loadConfig(path string) (domain.AnalysisConfig, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return domain.AnalysisConfig{}, "", zerr.Wrap(err, "failed to get working directory")
	}
	cfg, cfgPath, err := a.configLoader.Load(cwd, path)
	if err != nil {
		return domain.AnalysisConfig{}, "", zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, cfgPath, nil
}

// session is an open scene with its engine and live configuration.
type session struct {
	scene      ports.Scene
	engine     *analysis.Engine
	config     *config.Provider
	configPath string
}

func (a *App) open(scenePath, configPath string) (*session, error) {
	cfg, cfgPath, err := a.loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cfgPath != "" {
		a.logger.Info("using configuration " + cfgPath)
	}

	if scenePath == "" {
		scenePath = DefaultScenePath
	}
	scene, err := a.sceneLoader.Load(scenePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load scene")
	}

	provider := config.NewProvider(cfg)
	eng, err := a.factory.New(scene, provider)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create analysis engine")
	}

	return &session{scene: scene, engine: eng, config: provider, configPath: cfgPath}, nil
}

// round queries every target and collects the results in registry order.
// A nil feature list queries the enabled features.
func (s *session) round(
	ctx context.Context,
	n int,
	targets []domain.ObjectInfo,
	features []domain.FeatureID,
) (domain.Report, error) {
	start := time.Now()

	fs := features
	if fs == nil {
		cfg := s.config.Config()
		fs = cfg.EnabledFeatures()
	}

	rep := domain.Report{Round: n, Objects: make([]domain.ObjectReport, 0, len(targets))}
	for _, obj := range targets {
		results, err := s.engine.QueryMany(ctx, obj.Key, fs)
		if err != nil {
			return domain.Report{}, zerr.With(zerr.Wrap(err, "failed to analyze object"), "object", obj.Name)
		}

		or := domain.ObjectReport{Key: obj.Key, Name: obj.Name, Results: make([]domain.FeatureResult, 0, len(fs))}
		for _, f := range fs {
			or.Results = append(or.Results, results[f])
		}
		rep.Objects = append(rep.Objects, or)
	}

	rep.Stats = s.engine.Stats()
	rep.Duration = time.Since(start)
	return rep, nil
}

// parseFeatures resolves feature names into registry order without duplicates.
func parseFeatures(names []string) ([]domain.FeatureID, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]domain.FeatureID, 0, len(names))
	for _, name := range names {
		f, err := domain.ParseFeatureID(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return out, nil
}

// selectObjects picks the named objects in the order given, or every mesh
// object when no names are given.
func selectObjects(objects []domain.ObjectInfo, names []string) ([]domain.ObjectInfo, error) {
	if len(names) == 0 {
		var out []domain.ObjectInfo
		for _, obj := range objects {
			if obj.Mesh {
				out = append(out, obj)
			}
		}
		if len(out) == 0 {
			return nil, domain.ErrNoObjects
		}
		return out, nil
	}

	out := make([]domain.ObjectInfo, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(objects, func(o domain.ObjectInfo) bool { return o.Name == name })
		if i < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrObjectNotFound, "cannot select object"), "object", name)
		}
		out = append(out, objects[i])
	}
	return out, nil
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
