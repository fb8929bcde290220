// Package invalidation decides when cached analysis results stop being usable.
//
// Every tracked object is either Clean or Dirty. Host change events move an
// object to Dirty; it becomes Clean again once every enabled feature has been
// recomputed. Dirty objects keep their entries in the cache, they are only
// skipped by lookups.
package invalidation

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/engine/cache"
)

// State is the invalidation state of one object.
type State uint8

const (
	// Clean means every enabled feature has a fresh entry.
	Clean State = iota
	// Dirty means at least one enabled feature must be recomputed.
	Dirty
)

func (s State) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "clean"
}

// Action is what the policy does in response to an event.
type Action uint8

const (
	// ActionNone leaves the cache untouched.
	ActionNone Action = iota
	// ActionMarkDirty makes every entry of the object stale.
	ActionMarkDirty
	// ActionEvict drops the object and its entries.
	ActionEvict
)

func (a Action) String() string {
	switch a {
	case ActionMarkDirty:
		return "mark_dirty"
	case ActionEvict:
		return "evict"
	default:
		return "none"
	}
}

// Policy routes change events into an analysis cache.
type Policy struct {
	cache   *cache.AnalysisCache
	epsilon float64
}

// New creates a policy acting on c. Transforms closer than epsilon per
// component are treated as unchanged.
func New(c *cache.AnalysisCache, epsilon float64) *Policy {
	return &Policy{cache: c, epsilon: epsilon}
}

// SetEpsilon changes the transform comparison tolerance.
func (p *Policy) SetEpsilon(epsilon float64) {
	p.epsilon = epsilon
}

// Decide returns the action for ev without applying it.
func (p *Policy) Decide(ev domain.ChangeEvent) Action {
	if ev.Kind == domain.ChangeDeleted {
		if p.cache.Tracked(ev.Object) {
			return ActionEvict
		}
		return ActionNone
	}

	state, ok := p.cache.Analyzer(ev.Object)
	if !ok {
		return ActionNone
	}

	switch ev.Kind {
	case domain.ChangeGeometry:
		return ActionMarkDirty
	case domain.ChangeTransform:
		if !state.HasTransform || !p.sameTransform(state.Transform, ev.Transform) {
			return ActionMarkDirty
		}
		return ActionNone
	case domain.ChangeMode:
		if state.Mode != ev.Mode {
			return ActionMarkDirty
		}
		return ActionNone
	default:
		return ActionNone
	}
}

// Apply decides and executes the action for ev.
func (p *Policy) Apply(ev domain.ChangeEvent) Action {
	action := p.Decide(ev)
	switch action {
	case ActionEvict:
		p.cache.EvictObject(ev.Object)
	case ActionMarkDirty:
		p.cache.MarkDirty(ev.Object)
		p.record(ev)
	}
	return action
}

func (p *Policy) record(ev domain.ChangeEvent) {
	switch ev.Kind {
	case domain.ChangeTransform:
		p.cache.SetTransform(ev.Object, ev.Transform)
	case domain.ChangeMode:
		p.cache.SetMode(ev.Object, ev.Mode)
	}
}

func (p *Policy) sameTransform(a, b mgl64.Mat4) bool {
	return a.ApproxEqualThreshold(b, p.epsilon)
}

// State reports Clean when every feature in enabled has a fresh entry for key.
// Untracked objects are Dirty unless nothing is enabled.
func (p *Policy) State(key domain.ObjectKey, enabled []domain.FeatureID) State {
	for _, f := range enabled {
		if !p.cache.Fresh(key, f) {
			return Dirty
		}
	}
	return Clean
}

// ConfigChanged returns the features whose cached results are invalidated by
// switching the classifier configuration from old to updated. Colors and
// enable toggles live outside ClassifierConfig and never invalidate anything.
func ConfigChanged(old, updated domain.ClassifierConfig) []domain.FeatureID {
	if old.QuadSplit != updated.QuadSplit || old.FaceOffset != updated.FaceOffset {
		return domain.FeaturesOfKind(domain.KindFace)
	}

	var out []domain.FeatureID
	if old.PlanarThreshold != updated.PlanarThreshold {
		out = append(out, domain.FeatureNonPlanarFaces)
	}
	if old.AreaEpsilon != updated.AreaEpsilon ||
		old.PositionEpsilon != updated.PositionEpsilon ||
		old.CollinearCheck != updated.CollinearCheck ||
		old.CollinearEpsilon != updated.CollinearEpsilon {
		out = append(out, domain.FeatureDegenerateFaces)
	}
	return out
}

// ApplyConfig drops the cached results invalidated by a classifier
// configuration change and returns the affected features.
func (p *Policy) ApplyConfig(old, updated domain.ClassifierConfig) []domain.FeatureID {
	fs := ConfigChanged(old, updated)
	p.cache.InvalidateFeatures(fs...)
	return fs
}
