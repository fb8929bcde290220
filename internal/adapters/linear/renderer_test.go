package linear_test

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mesha/internal/adapters/linear"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestRenderer_Lifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)
	require.NoError(t, r.Start(context.Background()))

	key := domain.ObjectKeyForName("cube")
	r.OnChanges([]domain.ChangeEvent{
		{Object: key, Kind: domain.ChangeTransform},
		{Object: key, Kind: domain.ChangeMode, Mode: domain.ModeEdit},
	})
	assert.Equal(t,
		"[watch] 2 change(s): "+key.Short()+" transform, "+key.Short()+" mode\n",
		stderr.String())

	r.OnReport(domain.Report{
		Round:    2,
		Objects:  []domain.ObjectReport{{Key: key, Name: "cube"}},
		Duration: time.Millisecond,
	})
	assert.Contains(t, stdout.String(), "Round 2 1 object(s) in 1ms")
	assert.Contains(t, stdout.String(), "cube "+key.Short())

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
}

func TestRenderer_OnError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnError(zerr.New("scene parse failed"))
	r.OnError(nil)

	assert.Equal(t, "✗ Round failed: scene parse failed\n", stderr.String())
	assert.Empty(t, stdout.String())
}

func TestRenderer_EmptyChangesAreQuiet(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnChanges(nil)

	assert.Empty(t, stderr.String())
}

func TestRenderer_StopSilences(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)
	require.NoError(t, r.Stop())

	r.OnChanges([]domain.ChangeEvent{{Kind: domain.ChangeGeometry}})
	r.OnReport(domain.Report{Round: 1})
	r.OnError(zerr.New("late"))

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_WaitBlocksUntilStop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := linear.NewRenderer(io.Discard, io.Discard)

		var waited atomic.Bool
		go func() {
			_ = r.Wait()
			waited.Store(true)
		}()

		synctest.Wait()
		assert.False(t, waited.Load())

		require.NoError(t, r.Stop())
		require.NoError(t, r.Stop())
		synctest.Wait()
		assert.True(t, waited.Load())
	})
}
