package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/mesha/internal/core/ports"
)

// DefaultSlowThreshold is the span duration above which a warning is logged.
const DefaultSlowThreshold = 250 * time.Millisecond

// SlowSpanLogger is a span processor that warns about spans running longer
// than a threshold.
type SlowSpanLogger struct {
	logger    ports.Logger
	threshold time.Duration
}

// NewSlowSpanLogger creates a SlowSpanLogger.
func NewSlowSpanLogger(logger ports.Logger, threshold time.Duration) *SlowSpanLogger {
	return &SlowSpanLogger{logger: logger, threshold: threshold}
}

// OnStart does nothing.
func (p *SlowSpanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd warns when s took longer than the threshold.
func (p *SlowSpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	elapsed := s.EndTime().Sub(s.StartTime())
	if elapsed <= p.threshold {
		return
	}

	msg := fmt.Sprintf("slow %s took %s", s.Name(), elapsed.Round(time.Microsecond))
	for _, attr := range s.Attributes() {
		if attr.Key == "object" {
			msg += " object=" + attr.Value.Emit()
		}
	}
	p.logger.Warn(msg)
}

// ForceFlush does nothing.
func (p *SlowSpanLogger) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (p *SlowSpanLogger) Shutdown(context.Context) error {
	return nil
}

// Install registers a global tracer provider that reports slow spans to
// logger. The returned function shuts the provider down.
func Install(logger ports.Logger, threshold time.Duration) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewSlowSpanLogger(logger, threshold)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
