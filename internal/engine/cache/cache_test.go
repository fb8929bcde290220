package cache_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/engine/cache"
)

func result(f domain.FeatureID, indices ...int) domain.FeatureResult {
	r := domain.EmptyResult(f)
	r.Indices = indices
	return r
}

func newCache(t *testing.T, capacity int) *cache.AnalysisCache {
	t.Helper()
	c, err := cache.New(capacity)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -3} {
		_, err := cache.New(capacity)
		assert.ErrorIs(t, err, domain.ErrInvalidCapacity)
	}
}

func TestGetPut(t *testing.T) {
	c := newCache(t, 2)
	key := domain.NewObjectKey()

	_, ok := c.Get(key, domain.FeatureTriFaces)
	assert.False(t, ok)

	c.Put(key, domain.FeatureTriFaces, result(domain.FeatureTriFaces, 1, 2), 7)
	got, ok := c.Get(key, domain.FeatureTriFaces)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, got.Indices)

	c.Put(key, domain.FeatureTriFaces, result(domain.FeatureTriFaces, 3), 8)
	got, ok = c.Get(key, domain.FeatureTriFaces)
	require.True(t, ok)
	assert.Equal(t, []int{3}, got.Indices)

	state, ok := c.Analyzer(key)
	require.True(t, ok)
	assert.Equal(t, 1, state.Entries, "overwrite must not duplicate entries")
	assert.Equal(t, uint64(8), state.Revision)

	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Objects)
}

func TestEvictsLeastRecentlyQueried(t *testing.T) {
	c := newCache(t, 2)
	a, b, d := domain.NewObjectKey(), domain.NewObjectKey(), domain.NewObjectKey()

	var evicted []domain.ObjectKey
	c.OnEvict(func(key domain.ObjectKey) { evicted = append(evicted, key) })

	c.Put(a, domain.FeatureTriFaces, result(domain.FeatureTriFaces), 0)
	c.Put(a, domain.FeatureQuadFaces, result(domain.FeatureQuadFaces), 0)
	c.Put(b, domain.FeatureTriFaces, result(domain.FeatureTriFaces), 0)

	// Querying a makes b the least recently used.
	_, ok := c.Get(a, domain.FeatureTriFaces)
	require.True(t, ok)
	assert.Equal(t, []domain.ObjectKey{a, b}, c.Keys())

	c.Put(d, domain.FeatureTriFaces, result(domain.FeatureTriFaces), 0)

	assert.Equal(t, []domain.ObjectKey{b}, evicted)
	assert.Equal(t, 2, c.Len())
	assert.False(t, c.Tracked(b))
	_, ok = c.Get(b, domain.FeatureTriFaces)
	assert.False(t, ok)

	_, ok = c.Get(a, domain.FeatureQuadFaces)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestEvictionCascadesToFeatureTier(t *testing.T) {
	c := newCache(t, 1)
	a, b := domain.NewObjectKey(), domain.NewObjectKey()

	for _, f := range domain.FeaturesOfKind(domain.KindFace) {
		c.Put(a, f, result(f), 0)
	}
	c.Put(b, domain.FeatureTriFaces, result(domain.FeatureTriFaces), 0)

	for _, f := range domain.FeaturesOfKind(domain.KindFace) {
		_, ok := c.Get(a, f)
		assert.False(t, ok, f.String())
	}
	// Re-tracking a starts from an empty feature tier.
	c.SetMode(a, domain.ModeObject)
	state, ok := c.Analyzer(a)
	require.True(t, ok)
	assert.Zero(t, state.Entries)
}

func TestInvalidateScoping(t *testing.T) {
	c := newCache(t, 4)
	key := domain.NewObjectKey()
	c.Put(key, domain.FeatureTriFaces, result(domain.FeatureTriFaces), 0)
	c.Put(key, domain.FeatureQuadFaces, result(domain.FeatureQuadFaces), 0)

	assert.Equal(t, 1, c.Invalidate(key, domain.FeatureTriFaces))

	_, ok := c.Get(key, domain.FeatureTriFaces)
	assert.False(t, ok)
	_, ok = c.Get(key, domain.FeatureQuadFaces)
	assert.True(t, ok)

	assert.Equal(t, 1, c.Invalidate(key))
	_, ok = c.Get(key, domain.FeatureQuadFaces)
	assert.False(t, ok)
	assert.True(t, c.Tracked(key))

	assert.Zero(t, c.Invalidate(domain.NewObjectKey()))
}

func TestInvalidateFeatures(t *testing.T) {
	c := newCache(t, 4)
	a, b := domain.NewObjectKey(), domain.NewObjectKey()
	for _, key := range []domain.ObjectKey{a, b} {
		c.Put(key, domain.FeatureNonPlanarFaces, result(domain.FeatureNonPlanarFaces), 0)
		c.Put(key, domain.FeatureTriFaces, result(domain.FeatureTriFaces), 0)
	}

	assert.Equal(t, 2, c.InvalidateFeatures(domain.FeatureNonPlanarFaces))
	assert.Zero(t, c.InvalidateFeatures())

	for _, key := range []domain.ObjectKey{a, b} {
		assert.False(t, c.Fresh(key, domain.FeatureNonPlanarFaces))
		assert.True(t, c.Fresh(key, domain.FeatureTriFaces))
	}
}

func TestEvictObject(t *testing.T) {
	c := newCache(t, 2)
	key := domain.NewObjectKey()
	called := false
	c.OnEvict(func(domain.ObjectKey) { called = true })

	c.Put(key, domain.FeatureSeamEdges, result(domain.FeatureSeamEdges), 0)
	assert.True(t, c.EvictObject(key))
	assert.False(t, c.EvictObject(key))
	assert.False(t, called)
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Keys())
}

func TestMarkDirty_KeepsEntriesButNeverServesThem(t *testing.T) {
	c := newCache(t, 2)
	key := domain.NewObjectKey()
	c.Put(key, domain.FeatureTriFaces, result(domain.FeatureTriFaces, 0), 11)

	assert.True(t, c.MarkDirty(key))
	assert.False(t, c.MarkDirty(domain.NewObjectKey()))

	_, ok := c.Get(key, domain.FeatureTriFaces)
	assert.False(t, ok)
	state, _ := c.Analyzer(key)
	assert.Equal(t, 1, state.Entries)
	assert.Equal(t, uint64(1), c.Stats().Stale)

	c.Put(key, domain.FeatureTriFaces, result(domain.FeatureTriFaces, 0), 12)
	_, ok = c.Get(key, domain.FeatureTriFaces)
	assert.True(t, ok)
}

func TestRevive(t *testing.T) {
	c := newCache(t, 2)
	key := domain.NewObjectKey()
	c.Put(key, domain.FeatureQuadFaces, result(domain.FeatureQuadFaces, 4), 42)

	_, ok := c.Revive(key, domain.FeatureQuadFaces, 42)
	assert.False(t, ok, "fresh entries are not revived")

	c.MarkDirty(key)
	_, ok = c.Revive(key, domain.FeatureQuadFaces, 41)
	assert.False(t, ok)
	_, ok = c.Revive(key, domain.FeatureQuadFaces, 0)
	assert.False(t, ok)

	got, ok := c.Revive(key, domain.FeatureQuadFaces, 42)
	require.True(t, ok)
	assert.Equal(t, []int{4}, got.Indices)
	assert.True(t, c.Fresh(key, domain.FeatureQuadFaces))
	assert.Equal(t, uint64(1), c.Stats().Revived)
}

func TestRevive_RequiresSameTransform(t *testing.T) {
	c := newCache(t, 2)
	key := domain.NewObjectKey()
	c.SetTransform(key, mgl64.Ident4())
	c.Put(key, domain.FeatureQuadFaces, result(domain.FeatureQuadFaces, 4), 42)

	c.SetTransform(key, mgl64.Translate3D(100, 0, 0))
	c.MarkDirty(key)
	_, ok := c.Revive(key, domain.FeatureQuadFaces, 42)
	assert.False(t, ok, "results computed before a move are not revived")

	c.SetTransform(key, mgl64.Ident4())
	_, ok = c.Revive(key, domain.FeatureQuadFaces, 42)
	assert.True(t, ok)
}

func TestBookkeeping(t *testing.T) {
	c := newCache(t, 2)
	key := domain.NewObjectKey()

	_, ok := c.Analyzer(key)
	assert.False(t, ok)

	m := mgl64.Translate3D(1, 2, 3)
	c.SetTransform(key, m)
	c.SetMode(key, domain.ModeEdit)

	state, ok := c.Analyzer(key)
	require.True(t, ok)
	assert.True(t, state.HasTransform)
	assert.Equal(t, m, state.Transform)
	assert.Equal(t, domain.ModeEdit, state.Mode)
	assert.Equal(t, key, state.Key)
}

func TestFresh_DoesNotCountLookups(t *testing.T) {
	c := newCache(t, 2)
	key := domain.NewObjectKey()
	c.Put(key, domain.FeatureTriFaces, result(domain.FeatureTriFaces), 0)

	assert.True(t, c.Fresh(key, domain.FeatureTriFaces))
	assert.False(t, c.Fresh(key, domain.FeatureQuadFaces))

	stats := c.Stats()
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
}
