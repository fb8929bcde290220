// Package cache implements the two-tier analysis cache.
//
// The object tier is an LRU bounded by a fixed number of objects. Each object
// owns a feature tier holding at most one entry per feature. Evicting an
// object drops its feature tier with it.
//
// Marking an object dirty does not remove its entries. It bumps the object's
// generation so that entries written before the bump are never served again;
// they stay in place until they are overwritten, revived, or evicted.
package cache

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/zerr"
)

// Entry is one cached feature result.
type Entry struct {
	Result     domain.FeatureResult
	Revision   uint64
	// Transform is the object's world matrix when Result was computed.
	Transform  mgl64.Mat4
	generation uint64
	lastAccess uint64
}

// objectAnalyzer holds the feature tier and bookkeeping of one object.
type objectAnalyzer struct {
	transform    mgl64.Mat4
	hasTransform bool
	mode         domain.ObjectMode
	revision     uint64
	generation   uint64
	lastAccess   uint64
	entries      map[domain.FeatureID]*Entry
	node         *recencyNode[domain.ObjectKey]
}

func (a *objectAnalyzer) fresh(e *Entry) bool {
	return e.generation == a.generation
}

// ObjectState is a copy of the bookkeeping kept for one tracked object.
type ObjectState struct {
	Key domain.ObjectKey
	// Transform is the last known world matrix. HasTransform is false until one was recorded.
	Transform    mgl64.Mat4
	HasTransform bool
	Mode         domain.ObjectMode
	Revision     uint64
	Generation   uint64
	Entries      int
	LastAccess   uint64
}

// EvictFunc is called with the key of every object evicted for capacity.
type EvictFunc func(key domain.ObjectKey)

// AnalysisCache is a two-tier LRU of feature results. It is safe for concurrent use.
type AnalysisCache struct {
	mu       sync.Mutex
	capacity int
	objects  map[domain.ObjectKey]*objectAnalyzer
	recency  recencyList[domain.ObjectKey]
	tick     uint64
	stats    domain.CacheStats
	onEvict  EvictFunc
}

// New creates a cache holding at most capacity objects.
func New(capacity int) (*AnalysisCache, error) {
	if capacity < 1 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidCapacity, "cannot create analysis cache"), "capacity", capacity)
	}
	return &AnalysisCache{
		capacity: capacity,
		objects:  make(map[domain.ObjectKey]*objectAnalyzer, capacity),
	}, nil
}

// OnEvict registers fn to be called after an object is evicted for capacity.
// Explicit evictions through EvictObject do not call it.
func (c *AnalysisCache) OnEvict(fn EvictFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Capacity returns the object tier bound.
func (c *AnalysisCache) Capacity() int {
	return c.capacity
}

// Get returns the cached result for (key, f). Missing and stale entries are misses.
// A hit makes the object the most recently used.
func (c *AnalysisCache) Get(key domain.ObjectKey, f domain.FeatureID) (domain.FeatureResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.objects[key]
	if !ok {
		c.stats.Misses++
		return domain.FeatureResult{}, false
	}
	e, ok := a.entries[f]
	if !ok {
		c.stats.Misses++
		return domain.FeatureResult{}, false
	}
	if !a.fresh(e) {
		c.stats.Misses++
		c.stats.Stale++
		return domain.FeatureResult{}, false
	}

	c.stats.Hits++
	c.touch(a, e)
	return e.Result, true
}

// Fresh reports whether (key, f) would be served by Get, without counting a
// lookup or updating recency.
func (c *AnalysisCache) Fresh(key domain.ObjectKey, f domain.FeatureID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.objects[key]
	if !ok {
		return false
	}
	e, ok := a.entries[f]
	return ok && a.fresh(e)
}

// Put stores result for (key, f), replacing any previous entry, and records
// revision as the object's latest known revision. Inserting a new object may
// evict the least recently used one.
func (c *AnalysisCache) Put(key domain.ObjectKey, f domain.FeatureID, result domain.FeatureResult, revision uint64) {
	evicted := c.put(key, f, result, revision)
	c.notify(evicted)
}

func (c *AnalysisCache) put(
	key domain.ObjectKey,
	f domain.FeatureID,
	result domain.FeatureResult,
	revision uint64,
) []domain.ObjectKey {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, evicted := c.track(key)
	e, ok := a.entries[f]
	if !ok {
		e = &Entry{}
		a.entries[f] = e
	}
	e.Result = result
	e.Revision = revision
	e.Transform = a.transform
	e.generation = a.generation
	a.revision = revision
	c.touch(a, e)
	return evicted
}

// Revive makes a stale entry fresh again when its recorded revision matches
// revision and it was computed under the object's current transform. Results
// hold world-space geometry, so a moved object is never revived. A zero
// revision never matches.
func (c *AnalysisCache) Revive(key domain.ObjectKey, f domain.FeatureID, revision uint64) (domain.FeatureResult, bool) {
	if revision == 0 {
		return domain.FeatureResult{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.objects[key]
	if !ok {
		return domain.FeatureResult{}, false
	}
	e, ok := a.entries[f]
	if !ok || a.fresh(e) || e.Revision != revision || e.Transform != a.transform {
		return domain.FeatureResult{}, false
	}

	e.generation = a.generation
	a.revision = revision
	c.stats.Revived++
	c.touch(a, e)
	return e.Result, true
}

// Invalidate drops the entries of key for the given features, or every entry
// of key when no feature is given. The object stays tracked.
func (c *AnalysisCache) Invalidate(key domain.ObjectKey, fs ...domain.FeatureID) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.objects[key]
	if !ok {
		return 0
	}
	return dropEntries(a, fs)
}

// InvalidateFeatures drops the given features from every tracked object.
func (c *AnalysisCache) InvalidateFeatures(fs ...domain.FeatureID) int {
	if len(fs) == 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for _, a := range c.objects {
		dropped += dropEntries(a, fs)
	}
	return dropped
}

func dropEntries(a *objectAnalyzer, fs []domain.FeatureID) int {
	if len(fs) == 0 {
		n := len(a.entries)
		clear(a.entries)
		return n
	}
	n := 0
	for _, f := range fs {
		if _, ok := a.entries[f]; ok {
			delete(a.entries, f)
			n++
		}
	}
	return n
}

// EvictObject removes key and all of its entries. It reports whether key was tracked.
func (c *AnalysisCache) EvictObject(key domain.ObjectKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.objects[key]
	if !ok {
		return false
	}
	c.recency.remove(a.node)
	delete(c.objects, key)
	return true
}

// MarkDirty makes every entry of key stale. It reports whether key was tracked.
func (c *AnalysisCache) MarkDirty(key domain.ObjectKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.objects[key]
	if !ok {
		return false
	}
	a.generation++
	return true
}

// SetTransform records the last known world matrix of key, tracking it if needed.
func (c *AnalysisCache) SetTransform(key domain.ObjectKey, m mgl64.Mat4) {
	evicted := func() []domain.ObjectKey {
		c.mu.Lock()
		defer c.mu.Unlock()
		a, evicted := c.track(key)
		a.transform = m
		a.hasTransform = true
		return evicted
	}()
	c.notify(evicted)
}

// SetMode records the last known interaction mode of key, tracking it if needed.
func (c *AnalysisCache) SetMode(key domain.ObjectKey, mode domain.ObjectMode) {
	evicted := func() []domain.ObjectKey {
		c.mu.Lock()
		defer c.mu.Unlock()
		a, evicted := c.track(key)
		a.mode = mode
		return evicted
	}()
	c.notify(evicted)
}

// Analyzer returns a copy of the bookkeeping for key.
func (c *AnalysisCache) Analyzer(key domain.ObjectKey) (ObjectState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.objects[key]
	if !ok {
		return ObjectState{}, false
	}
	return ObjectState{
		Key:          key,
		Transform:    a.transform,
		HasTransform: a.hasTransform,
		Mode:         a.mode,
		Revision:     a.revision,
		Generation:   a.generation,
		Entries:      len(a.entries),
		LastAccess:   a.lastAccess,
	}, true
}

// Tracked reports whether key is in the object tier.
func (c *AnalysisCache) Tracked(key domain.ObjectKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.objects[key]
	return ok
}

// Len returns the number of tracked objects.
func (c *AnalysisCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.objects)
}

// Keys returns the tracked objects from most to least recently used.
func (c *AnalysisCache) Keys() []domain.ObjectKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.keys()
}

// Stats returns a copy of the cache counters.
func (c *AnalysisCache) Stats() domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Objects = len(c.objects)
	return s
}

// track returns the analyzer for key, creating it and evicting the least
// recently used objects beyond capacity. Callers hold c.mu.
func (c *AnalysisCache) track(key domain.ObjectKey) (*objectAnalyzer, []domain.ObjectKey) {
	if a, ok := c.objects[key]; ok {
		return a, nil
	}

	var evicted []domain.ObjectKey
	for len(c.objects) >= c.capacity {
		oldest, ok := c.recency.oldest()
		if !ok {
			break
		}
		c.recency.remove(c.objects[oldest].node)
		delete(c.objects, oldest)
		c.stats.Evictions++
		evicted = append(evicted, oldest)
	}

	a := &objectAnalyzer{
		entries: make(map[domain.FeatureID]*Entry),
		node:    c.recency.pushFront(key),
	}
	c.tick++
	a.lastAccess = c.tick
	c.objects[key] = a
	return a, evicted
}

// touch marks a and e as most recently used. Callers hold c.mu.
func (c *AnalysisCache) touch(a *objectAnalyzer, e *Entry) {
	c.tick++
	a.lastAccess = c.tick
	e.lastAccess = c.tick
	c.recency.touch(a.node)
}

func (c *AnalysisCache) notify(evicted []domain.ObjectKey) {
	if len(evicted) == 0 {
		return
	}
	c.mu.Lock()
	fn := c.onEvict
	c.mu.Unlock()
	if fn == nil {
		return
	}
	for _, key := range evicted {
		fn(key)
	}
}
