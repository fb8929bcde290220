package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mesha/cmd/mesha/commands"
	"go.trai.ch/mesha/internal/app"
	"go.trai.ch/mesha/internal/build"
)

type mockApp struct {
	analyzeFunc  func(ctx context.Context, opts app.AnalyzeOptions) error
	watchFunc    func(ctx context.Context, opts app.WatchOptions) error
	featuresFunc func(ctx context.Context, opts app.FeaturesOptions) error
}

func (m *mockApp) Analyze(ctx context.Context, opts app.AnalyzeOptions) error {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, opts app.WatchOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Features(ctx context.Context, opts app.FeaturesOptions) error {
	if m.featuresFunc != nil {
		return m.featuresFunc(ctx, opts)
	}
	return nil
}

// recordingLogger implements ports.Logger and the optional log settings.
type recordingLogger struct {
	json, quiet bool
}

func (*recordingLogger) Info(string)          {}
func (*recordingLogger) Warn(string)          {}
func (*recordingLogger) Error(error)          {}
func (l *recordingLogger) SetJSON(enable bool) { l.json = enable }
func (l *recordingLogger) SetQuiet(quiet bool) { l.quiet = quiet }

func TestCommands_Analyze(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.AnalyzeOptions
		mock := &mockApp{
			analyzeFunc: func(_ context.Context, opts app.AnalyzeOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{
			"analyze", "cube",
			"--scene", "shapes.yaml",
			"-c", "conf/mesha.yaml",
			"-O", "plane",
			"-f", "tri_faces", "--feature", "quad_faces",
			"--format", "json",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "shapes.yaml", captured.ScenePath)
		assert.Equal(t, "conf/mesha.yaml", captured.ConfigPath)
		assert.Equal(t, []string{"plane", "cube"}, captured.Objects)
		assert.Equal(t, []string{"tri_faces", "quad_faces"}, captured.Features)
		assert.Equal(t, "json", captured.Format)
	})

	t.Run("uses defaults", func(t *testing.T) {
		var captured app.AnalyzeOptions
		mock := &mockApp{
			analyzeFunc: func(_ context.Context, opts app.AnalyzeOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"analyze"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.DefaultScenePath, captured.ScenePath)
		assert.Equal(t, app.FormatText, captured.Format)
		assert.Empty(t, captured.Objects)
		assert.Empty(t, captured.ConfigPath)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockApp{
			analyzeFunc: func(_ context.Context, _ app.AnalyzeOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"analyze"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Watch(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.WatchOptions
		mock := &mockApp{
			watchFunc: func(_ context.Context, opts app.WatchOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"watch", "-s", "scene.yaml", "-o", "tui", "--metrics-addr", ":9090"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "tui", captured.OutputMode)
		assert.Equal(t, ":9090", captured.MetricsAddr)
	})

	t.Run("ci overrides output mode", func(t *testing.T) {
		var captured app.WatchOptions
		mock := &mockApp{
			watchFunc: func(_ context.Context, opts app.WatchOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"watch", "--output-mode", "tui", "--ci"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "linear", captured.OutputMode)
	})
}

func TestCommands_Features(t *testing.T) {
	var captured app.FeaturesOptions
	called := false
	mock := &mockApp{
		featuresFunc: func(_ context.Context, opts app.FeaturesOptions) error {
			captured = opts
			called = true
			return nil
		},
	}

	cli := commands.New(mock, nil)
	cli.SetArgs([]string{"features", "--config", "mesha.yaml"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
	assert.Equal(t, "mesha.yaml", captured.ConfigPath)

	cli = commands.New(mock, nil)
	cli.SetArgs([]string{"features", "extra"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, cli.Execute(context.Background()))
}

func TestCommands_LogFlags(t *testing.T) {
	log := &recordingLogger{}
	cli := commands.New(&mockApp{}, log)
	cli.SetArgs([]string{"features", "--json-logs", "-q"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, log.json)
	assert.True(t, log.quiet)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{}, nil)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "mesha version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", buf.String())

	buf.Reset()
	cli = commands.New(&mockApp{}, nil)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "mesha version "+build.Version)
}
