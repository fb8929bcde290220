package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/mesha/internal/adapters/metrics"
	"go.trai.ch/mesha/internal/adapters/primitive"
	"go.trai.ch/mesha/internal/adapters/scene"
	"go.trai.ch/mesha/internal/adapters/telemetry"
	"go.trai.ch/mesha/internal/app"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/core/ports/mocks"
	"go.trai.ch/mesha/internal/engine/analysis"
	"go.uber.org/mock/gomock"
)

func newProvider(t *testing.T) (ComponentProvider, *mocks.MockConfigLoader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	application := app.New(
		loader,
		scene.NewLoader(primitive.NewGenerator()),
		analysis.NewFactory(log, telemetry.NewNoOpTracer(), metrics.NewCollector()),
		log,
		mocks.NewMockWatcher(ctrl),
		nil,
	)

	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: log}, func() {}, nil
	}, loader, log
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider, _, _ := newProvider(t)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "mesha version")
}

// TestRun_Analyze runs a full analysis against a scene on disk.
func TestRun_Analyze(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	provider, loader, _ := newProvider(t)
	loader.EXPECT().Load(gomock.Any(), "").Return(domain.DefaultConfig(), "", nil)

	path := filepath.Join(t.TempDir(), "scene.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(`
objects:
  - name: box
    primitive:
      box: [2, 2, 2]
      cells: 4
`), 0o600))

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"analyze", "--scene", path, "-f", "boundary_edges"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "box")
	assert.Contains(t, stdout.String(), "boundary_edges")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	provider, _, log := newProvider(t)
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	})

	exitCode := run(context.Background(), []string{"analyze", "--format", "xml"}, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
}
