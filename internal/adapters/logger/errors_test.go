package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mesha/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	sentinel := zerr.New("unknown feature")
	err := zerr.With(zerr.Wrap(sentinel, "cannot query feature"), "feature", 77)

	entries := logger.CollectErrorEntries(err)
	require.Len(t, entries, 2)

	msg, md := logger.ErrorEntry(entries, 0)
	assert.Equal(t, "cannot query feature", msg)
	assert.Equal(t, map[string]any{"feature": 77}, md)

	msg, md = logger.ErrorEntry(entries, 1)
	assert.Equal(t, "unknown feature", msg)
	assert.Empty(t, md)
}

func TestCollectErrorEntries_StopsAtPlainError(t *testing.T) {
	err := zerr.Wrap(zerr.Wrap(errors.New("disk on fire"), "read scene"), "load scene")

	entries := logger.CollectErrorEntries(err)
	require.Len(t, entries, 3)
	msg, md := logger.ErrorEntry(entries, 2)
	assert.Equal(t, "disk on fire", msg)
	assert.Nil(t, md)

	assert.Empty(t, logger.CollectErrorEntries(nil))
}

func TestFormatErrorEntries(t *testing.T) {
	err := zerr.With(
		zerr.Wrap(zerr.Wrap(errors.New("line one\nline two"), "parse scene"), "load scene"),
		"path", "scene.yaml",
	)

	got := logger.FormatErrorEntries(logger.CollectErrorEntries(err))

	want := "Error: load scene (path=scene.yaml)\n" +
		"\n" +
		"  Caused by:\n" +
		"    → parse scene\n" +
		"    → line one\n" +
		"      line two"
	assert.Equal(t, want, got)
}

func TestFormatErrorEntries_SortsMetadata(t *testing.T) {
	err := zerr.With(zerr.With(zerr.New("bad config"), "b", 2), "a", "x")

	got := logger.FormatErrorEntries(logger.CollectErrorEntries(err))
	assert.Equal(t, "Error: bad config (a=x, b=2)", got)
}
