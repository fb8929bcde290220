package app

import (
	"context"
	"errors"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/mesha/internal/adapters/detector"
	"go.trai.ch/mesha/internal/adapters/linear"
	"go.trai.ch/mesha/internal/adapters/tui"
	"go.trai.ch/mesha/internal/adapters/watcher"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const defaultDebounce = watcher.DefaultDebounceWindow

// WatchOptions configures the Watch method.
type WatchOptions struct {
	ScenePath  string
	ConfigPath string
	Objects    []string
	Features   []string
	OutputMode string
	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string
}

// Watch analyzes the scene, then re-analyzes it whenever the scene or the
// configuration file changes, until ctx is done or the user quits.
//
//nolint:cyclop // orchestration function
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	override, err := detector.ParseMode(opts.OutputMode)
	if err != nil {
		return err
	}
	features, err := parseFeatures(opts.Features)
	if err != nil {
		return err
	}

	sess, err := a.open(opts.ScenePath, opts.ConfigPath)
	if err != nil {
		return err
	}

	w := a.watcher
	defer func() {
		_ = w.Stop()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var renderer ports.Renderer
	if detector.ResolveMode(detector.DetectEnvironment(), override) == detector.ModeTUI {
		model := tui.NewModel(a.stderr)
		teaOpts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(a.stderr)}, a.teaOptions...)
		renderer = tui.NewRenderer(&model, teaOpts...)
	} else {
		renderer = linear.NewRenderer(a.stdout, a.stderr)
	}

	scenePath := absPath(sess.scene.Path())
	configPath := absPath(sess.configPath)
	if err := w.Start(ctx, scenePath, configPath); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}

	g, ctx := errgroup.WithContext(ctx)

	// Renderer routine. Quitting the renderer ends the watch.
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		err := renderer.Wait()
		cancel()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	if opts.MetricsAddr != "" && a.metrics != nil {
		g.Go(func() error {
			return a.metrics.Serve(ctx, opts.MetricsAddr)
		})
	}

	batches := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})

	// Event routine.
	g.Go(func() error {
		for ev := range w.Events() {
			debouncer.Add(ev.Path)
		}
		return nil
	})

	// Analysis routine.
	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
			_ = w.Stop()
		}()

		loop := &watchLoop{app: a, sess: sess, renderer: renderer, objects: opts.Objects, features: features}
		loop.analyze(ctx)

		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-batches:
				loop.refresh(ctx, paths, scenePath, configPath)
			}
		}
	})

	return g.Wait()
}

type watchLoop struct {
	app      *App
	sess     *session
	renderer ports.Renderer
	objects  []string
	features []domain.FeatureID
	rounds   int
}

// refresh reloads whatever changed among paths and runs a new round.
func (l *watchLoop) refresh(ctx context.Context, paths []string, scenePath, configPath string) {
	if configPath != "" && slices.Contains(paths, configPath) {
		cfg, _, err := l.app.configLoader.Load("", configPath)
		if err != nil {
			l.renderer.OnError(zerr.Wrap(err, "failed to reload configuration"))
			return
		}
		l.sess.config.Set(cfg)
	}

	if slices.Contains(paths, scenePath) {
		events, err := l.sess.scene.Reload()
		if err != nil {
			l.renderer.OnError(zerr.Wrap(err, "failed to reload scene"))
			return
		}
		if len(events) > 0 {
			l.renderer.OnChanges(events)
			l.sess.engine.HandleEvents(events)
		}
	}

	l.analyze(ctx)
}

func (l *watchLoop) analyze(ctx context.Context) {
	targets, err := selectObjects(l.sess.scene.Objects(), l.objects)
	if errors.Is(err, domain.ErrNoObjects) {
		targets, err = nil, nil
	}
	if err != nil {
		l.renderer.OnError(err)
		return
	}

	l.rounds++
	rep, err := l.sess.round(ctx, l.rounds, targets, l.features)
	if err != nil {
		l.renderer.OnError(err)
		return
	}
	if ctx.Err() != nil {
		return
	}
	l.renderer.OnReport(rep)
}
