package telemetry

import (
	"context"
	"fmt"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/muleboot/internal/core/ports"
)

// NewProvider creates a tracer provider without exporters. Spans are handed
// synchronously to the given processors.
func NewProvider(processors ...sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(opts...)
}

// LogProcessor reports every finished span as a debug log line.
type LogProcessor struct {
	logger ports.Logger
}

// NewLogProcessor creates a new LogProcessor.
func NewLogProcessor(logger ports.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

// OnStart does nothing.
func (p *LogProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, its duration and its error status.
func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	msg := fmt.Sprintf("%s finished in %s", s.Name(), elapsed)
	if desc := s.Status().Description; desc != "" {
		msg += " (" + desc + ")"
	}
	p.logger.Debug(msg)
}

// Shutdown does nothing.
func (p *LogProcessor) Shutdown(_ context.Context) error { return nil }

// ForceFlush does nothing.
func (p *LogProcessor) ForceFlush(_ context.Context) error { return nil }
