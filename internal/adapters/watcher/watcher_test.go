package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mesha/internal/adapters/watcher"
	"go.trai.ch/mesha/internal/core/ports"
	"go.trai.ch/mesha/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWatcher_ReportsOnlyWatchedFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	otherPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(scenePath, []byte("objects: []\n"), 0o600))

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, scenePath, ""))

	got := make(chan ports.WatchEvent, 16)
	go func() {
		for ev := range w.Events() {
			got <- ev
		}
		close(got)
	}()

	require.NoError(t, os.WriteFile(otherPath, []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(scenePath, []byte("objects: [{name: a, type: empty}]\n"), 0o600))

	select {
	case ev := <-got:
		assert.Equal(t, scenePath, ev.Path)
		assert.Contains(t, []ports.WatchOp{ports.OpWrite, ports.OpCreate}, ev.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the watched file")
	}

	cancel()
	for ev := range got {
		assert.Equal(t, scenePath, ev.Path)
	}
}
