// Package analysis is the query entry point of the engine.
//
// An Engine answers feature queries for host objects. It serves fresh cache
// entries directly and classifies everything else from a single snapshot
// fetched per call. Host change events are routed through the invalidation
// policy, so nothing is recomputed until a feature is queried again.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/core/ports"
	"go.trai.ch/mesha/internal/engine/cache"
	"go.trai.ch/mesha/internal/engine/classifier"
	"go.trai.ch/mesha/internal/engine/invalidation"
	"go.trai.ch/zerr"
)

// Engine answers feature queries against a snapshot provider.
type Engine struct {
	provider ports.SnapshotProvider
	config   ports.ConfigProvider
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.Metrics

	cache  *cache.AnalysisCache
	policy *invalidation.Policy

	// mu guards the classifier, the applied configuration and the policy tolerance.
	mu         sync.Mutex
	classifier *classifier.Classifier
	applied    domain.ClassifierConfig
}

// New creates an engine. The configuration is validated once here; the
// object capacity it carries is fixed for the engine's lifetime.
func New(
	provider ports.SnapshotProvider,
	config ports.ConfigProvider,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
) (*Engine, error) {
	cfg := config.Config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.ObjectCapacity)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		provider:   provider,
		config:     config,
		logger:     logger,
		tracer:     tracer,
		metrics:    metrics,
		cache:      c,
		policy:     invalidation.New(c, cfg.TransformEpsilon),
		classifier: classifier.New(cfg.Classifier),
		applied:    cfg.Classifier,
	}
	c.OnEvict(e.onEvict)
	return e, nil
}

func (e *Engine) onEvict(key domain.ObjectKey) {
	e.metrics.ObserveEviction()
	e.logger.Info(fmt.Sprintf("evicted object %s from the analysis cache", key.Short()))
}

// Query returns the result of one feature for one object.
func (e *Engine) Query(ctx context.Context, key domain.ObjectKey, f domain.FeatureID) (domain.FeatureResult, error) {
	results, err := e.QueryMany(ctx, key, []domain.FeatureID{f})
	if err != nil {
		return domain.FeatureResult{}, err
	}
	return results[f], nil
}

// QueryEnabled queries every feature the configuration enables.
func (e *Engine) QueryEnabled(ctx context.Context, key domain.ObjectKey) (map[domain.FeatureID]domain.FeatureResult, error) {
	cfg := e.config.Config()
	return e.QueryMany(ctx, key, cfg.EnabledFeatures())
}

// QueryMany returns the results of several features for one object. At most
// one snapshot is fetched, and only when some feature is not cached.
//
// Returned results share their slices with the cache and must not be modified.
func (e *Engine) QueryMany(
	ctx context.Context,
	key domain.ObjectKey,
	fs []domain.FeatureID,
) (results map[domain.FeatureID]domain.FeatureResult, err error) {
	for _, f := range fs {
		if !f.Valid() {
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownFeature, "cannot query feature"), "feature", int(f))
		}
	}
	if key.IsZero() {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidObject, "cannot query object"), "object", key.String())
	}

	ctx, span := e.tracer.Start(ctx, "analysis.query",
		ports.WithAttribute("object", key.String()),
		ports.WithAttribute("features", len(fs)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	cfg := e.config.Config()
	cls := e.sync(cfg)

	results = make(map[domain.FeatureID]domain.FeatureResult, len(fs))
	var misses []domain.FeatureID
	for _, f := range fs {
		if _, done := results[f]; done || slices.Contains(misses, f) {
			continue
		}
		if r, ok := e.cache.Get(key, f); ok {
			e.metrics.ObserveQuery(f, ports.OutcomeHit)
			results[f] = colored(r, &cfg)
			continue
		}
		misses = append(misses, f)
	}
	span.SetAttribute("hits", len(results))
	span.SetAttribute("hit", len(misses) == 0)
	if len(misses) == 0 {
		return results, nil
	}

	snapshot, err := e.provider.Snapshot(ctx, key)
	switch {
	case errors.Is(err, domain.ErrStaleReference):
		e.cache.EvictObject(key)
		e.metrics.SetTrackedObjects(e.cache.Len())
		e.logger.Warn(fmt.Sprintf("object %s was deleted during analysis, dropping its cached results", key.Short()))
		for _, f := range misses {
			e.metrics.ObserveQuery(f, ports.OutcomeStale)
			results[f] = colored(domain.EmptyResult(f), &cfg)
		}
		span.SetAttribute("stale", true)
		return results, nil
	case errors.Is(err, domain.ErrInvalidObject):
		e.cache.EvictObject(key)
		return nil, err
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, "failed to snapshot object"), "object", key.String())
	}

	if snapshot == nil {
		snapshot = &domain.Snapshot{}
	}
	e.cache.SetTransform(key, snapshot.Transform)
	for _, f := range misses {
		if r, ok := e.cache.Revive(key, f, snapshot.Revision); ok {
			e.metrics.ObserveQuery(f, ports.OutcomeRevived)
			results[f] = colored(r, &cfg)
			continue
		}

		start := time.Now()
		r, err := cls.Classify(snapshot, f)
		if err != nil {
			return nil, err
		}
		e.metrics.ObserveClassification(f, time.Since(start), r.Len())
		e.metrics.ObserveQuery(f, ports.OutcomeMiss)

		e.cache.Put(key, f, r, snapshot.Revision)
		results[f] = colored(r, &cfg)
	}
	e.metrics.SetTrackedObjects(e.cache.Len())
	return results, nil
}

// sync applies classifier configuration changes and returns the classifier to use.
func (e *Engine) sync(cfg domain.AnalysisConfig) *classifier.Classifier {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.policy.SetEpsilon(cfg.TransformEpsilon)
	if cfg.Classifier == e.applied {
		return e.classifier
	}

	if err := cfg.Classifier.Validate(); err != nil {
		e.logger.Warn(fmt.Sprintf("ignoring invalid classifier configuration: %v", err))
		return e.classifier
	}

	affected := e.policy.ApplyConfig(e.applied, cfg.Classifier)
	e.classifier = classifier.New(cfg.Classifier)
	e.applied = cfg.Classifier
	if len(affected) > 0 {
		e.logger.Info(fmt.Sprintf("classifier configuration changed, invalidated %d features", len(affected)))
	}
	return e.classifier
}

// HandleEvent routes one host change event into the invalidation policy.
func (e *Engine) HandleEvent(ev domain.ChangeEvent) invalidation.Action {
	e.mu.Lock()
	action := e.policy.Apply(ev)
	e.mu.Unlock()
	if action == invalidation.ActionEvict {
		e.metrics.SetTrackedObjects(e.cache.Len())
	}
	return action
}

// HandleEvents routes host change events in order.
func (e *Engine) HandleEvents(events []domain.ChangeEvent) {
	for _, ev := range events {
		e.HandleEvent(ev)
	}
}

// State reports whether every enabled feature of key has a fresh result.
func (e *Engine) State(key domain.ObjectKey) invalidation.State {
	cfg := e.config.Config()
	return e.policy.State(key, cfg.EnabledFeatures())
}

// Stats returns the cache counters.
func (e *Engine) Stats() domain.CacheStats {
	return e.cache.Stats()
}

func colored(r domain.FeatureResult, cfg *domain.AnalysisConfig) domain.FeatureResult {
	r.Color = cfg.Feature(r.Feature).Color
	return r
}
