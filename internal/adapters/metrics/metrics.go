// Package metrics implements ports.Metrics on Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/core/ports"
	"go.trai.ch/zerr"
)

// Collector records engine activity into its own registry.
type Collector struct {
	registry *prometheus.Registry

	queries        *prometheus.CounterVec
	classifyTime   *prometheus.HistogramVec
	elements       *prometheus.HistogramVec
	evictions      prometheus.Counter
	trackedObjects prometheus.Gauge
}

var _ ports.Metrics = (*Collector)(nil)

// NewCollector creates a Collector backed by a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mesha_feature_queries_total",
			Help: "Total feature queries by outcome",
		}, []string{"feature", "outcome"}),
		classifyTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mesha_classification_duration_seconds",
			Help:    "Classifier run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}, []string{"feature"}),
		elements: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mesha_classified_elements",
			Help:    "Number of elements per classification result",
			Buckets: []float64{0, 1, 10, 100, 1000, 10000, 100000},
		}, []string{"feature"}),
		evictions: factory.NewCounter(prometheus.CounterOpts{
			Name: "mesha_cache_evictions_total",
			Help: "Total objects evicted from the analysis cache",
		}),
		trackedObjects: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mesha_cache_objects",
			Help: "Objects currently held by the analysis cache",
		}),
	}
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveQuery counts one feature query.
func (c *Collector) ObserveQuery(feature domain.FeatureID, outcome ports.QueryOutcome) {
	c.queries.WithLabelValues(feature.String(), string(outcome)).Inc()
}

// ObserveClassification records one classifier run.
func (c *Collector) ObserveClassification(feature domain.FeatureID, elapsed time.Duration, elements int) {
	c.classifyTime.WithLabelValues(feature.String()).Observe(elapsed.Seconds())
	c.elements.WithLabelValues(feature.String()).Observe(float64(elements))
}

// ObserveEviction counts one evicted object.
func (c *Collector) ObserveEviction() {
	c.evictions.Inc()
}

// SetTrackedObjects reports the cache population.
func (c *Collector) SetTrackedObjects(n int) {
	c.trackedObjects.Set(float64(n))
}

// Handler returns the HTTP handler exposing the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is canceled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx) //nolint:contextcheck // parent is already canceled
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "metrics endpoint failed"), "addr", addr)
	}
}
