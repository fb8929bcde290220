package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mesha/internal/adapters/metrics"
	"go.trai.ch/mesha/internal/adapters/primitive"
	"go.trai.ch/mesha/internal/adapters/scene"
	"go.trai.ch/mesha/internal/adapters/telemetry"
	"go.trai.ch/mesha/internal/app"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/core/ports"
	"go.trai.ch/mesha/internal/core/ports/mocks"
	"go.trai.ch/mesha/internal/engine/analysis"
	"go.trai.ch/mesha/internal/ui/report"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const testScene = `
version: "1"
objects:
  - name: plane
    mesh:
      vertices: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
      faces: [[0, 1, 2, 3]]
  - name: marker
    type: empty
  - name: tri
    mesh:
      vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0], [5, 5, 5]]
      faces: [[0, 1, 2]]
`

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

type fixture struct {
	app       *app.App
	loader    *mocks.MockConfigLoader
	watcher   *mocks.MockWatcher
	stdout    *syncBuffer
	stderr    *syncBuffer
	scenePath string
}

func newFixture(t *testing.T, sceneYAML string) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	scenePath := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte(sceneYAML), 0o600))

	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
		stdout:    &syncBuffer{},
		stderr:    &syncBuffer{},
		scenePath: scenePath,
	}
	factory := analysis.NewFactory(log, telemetry.NewNoOpTracer(), metrics.NewCollector())
	f.app = app.New(
		f.loader,
		scene.NewLoader(primitive.NewGenerator()),
		factory,
		log,
		f.watcher,
		nil,
	).WithOutput(f.stdout, f.stderr)
	return f
}

func (f *fixture) defaults() {
	f.loader.EXPECT().Load(gomock.Any(), "").Return(domain.DefaultConfig(), "", nil)
}

func TestApp_Analyze_Text(t *testing.T) {
	f := newFixture(t, testScene)
	f.defaults()

	err := f.app.Analyze(context.Background(), app.AnalyzeOptions{
		ScenePath: f.scenePath,
		Features:  []string{"quad_faces", "tri_faces", "quad_faces"},
	})
	require.NoError(t, err)

	out := f.stdout.String()
	assert.Contains(t, out, "Round 1 2 object(s)")
	assert.Contains(t, out, "plane")
	assert.Contains(t, out, "tri_faces")
	assert.NotContains(t, out, "marker")
	assert.NotContains(t, out, "isolated_vertices")
}

func TestApp_Analyze_JSON(t *testing.T) {
	f := newFixture(t, testScene)
	f.defaults()

	err := f.app.Analyze(context.Background(), app.AnalyzeOptions{
		ScenePath: f.scenePath,
		Format:    app.FormatJSON,
	})
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &rep))
	require.Len(t, rep.Objects, 2)
	assert.Equal(t, "plane", rep.Objects[0].Name)
	assert.Len(t, rep.Objects[0].Features, len(domain.Features()), "every feature is enabled by default")

	counts := map[string]map[domain.FeatureID]int{}
	for _, obj := range rep.Objects {
		counts[obj.Name] = map[domain.FeatureID]int{}
		for _, ft := range obj.Features {
			counts[obj.Name][ft.Name] = ft.Count
		}
	}
	assert.Equal(t, 1, counts["plane"][domain.FeatureQuadFaces])
	assert.Equal(t, 4, counts["plane"][domain.FeatureBoundaryEdges])
	assert.Equal(t, 1, counts["tri"][domain.FeatureTriFaces])
	assert.Equal(t, 1, counts["tri"][domain.FeatureIsolatedVertices])
	assert.Equal(t, uint64(2*len(domain.Features())), rep.Stats.Misses)
}

func TestApp_Analyze_SelectObjects(t *testing.T) {
	f := newFixture(t, testScene)
	f.defaults()

	err := f.app.Analyze(context.Background(), app.AnalyzeOptions{
		ScenePath: f.scenePath,
		Objects:   []string{"tri"},
		Format:    app.FormatJSON,
	})
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &rep))
	require.Len(t, rep.Objects, 1)
	assert.Equal(t, "tri", rep.Objects[0].Name)
}

func TestApp_Analyze_Errors(t *testing.T) {
	tests := []struct {
		name     string
		scene    string
		opts     app.AnalyzeOptions
		loads    bool
		expected error
	}{
		{
			name:     "InvalidFormat",
			scene:    testScene,
			opts:     app.AnalyzeOptions{Format: "xml"},
			expected: domain.ErrInvalidFormat,
		},
		{
			name:     "UnknownFeature",
			scene:    testScene,
			opts:     app.AnalyzeOptions{Features: []string{"holes"}},
			expected: domain.ErrUnknownFeature,
		},
		{
			name:     "UnknownObject",
			scene:    testScene,
			opts:     app.AnalyzeOptions{Objects: []string{"nope"}},
			loads:    true,
			expected: domain.ErrObjectNotFound,
		},
		{
			name:     "NotAMesh",
			scene:    testScene,
			opts:     app.AnalyzeOptions{Objects: []string{"marker"}},
			loads:    true,
			expected: domain.ErrInvalidObject,
		},
		{
			name:     "NoMeshObjects",
			scene:    "objects:\n  - name: marker\n    type: empty\n",
			loads:    true,
			expected: domain.ErrNoObjects,
		},
		{
			name:     "BrokenScene",
			scene:    "objects: [",
			loads:    true,
			expected: domain.ErrSceneParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.scene)
			if tt.loads {
				f.defaults()
			}
			opts := tt.opts
			opts.ScenePath = f.scenePath

			err := f.app.Analyze(context.Background(), opts)
			require.ErrorIs(t, err, tt.expected)
			assert.Empty(t, f.stdout.String())
		})
	}
}

func TestApp_Analyze_ConfigError(t *testing.T) {
	f := newFixture(t, testScene)
	f.loader.EXPECT().Load(gomock.Any(), "mesha.yaml").
		Return(domain.AnalysisConfig{}, "", zerr.Wrap(domain.ErrConfigParseFailed, "bad yaml"))

	err := f.app.Analyze(context.Background(), app.AnalyzeOptions{ScenePath: f.scenePath, ConfigPath: "mesha.yaml"})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestApp_Analyze_DisabledFeatures(t *testing.T) {
	f := newFixture(t, testScene)
	cfg := domain.DefaultConfig()
	for id := range cfg.Features {
		if id != domain.FeatureTriFaces {
			cfg.Features[id] = domain.FeatureConfig{}
		}
	}
	f.loader.EXPECT().Load(gomock.Any(), "").Return(cfg, "", nil)

	err := f.app.Analyze(context.Background(), app.AnalyzeOptions{ScenePath: f.scenePath, Format: app.FormatJSON})
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &rep))
	require.Len(t, rep.Objects[0].Features, 1)
	assert.Equal(t, domain.FeatureTriFaces, rep.Objects[0].Features[0].Name)
}

func TestApp_Features(t *testing.T) {
	f := newFixture(t, testScene)
	cfg := domain.DefaultConfig()
	cfg.Features[domain.FeatureSeamEdges] = domain.FeatureConfig{}
	f.loader.EXPECT().Load(gomock.Any(), "").Return(cfg, "", nil)

	require.NoError(t, f.app.Features(context.Background(), app.FeaturesOptions{}))

	out := f.stdout.String()
	for _, info := range domain.Features() {
		assert.Contains(t, out, info.Name)
	}
	assert.Contains(t, out, "○ ─ seam_edges")
}

var _ ports.Watcher = (*mocks.MockWatcher)(nil)
