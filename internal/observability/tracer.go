// Package observability wraps OpenTelemetry tracing for container operations.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/tether/internal/errors"
)

// InstrumentationName identifies the tracer.
const InstrumentationName = "github.com/xraph/tether"

// Span attribute keys.
const (
	AttrDependencyID = attribute.Key("tether.dependency.id")
	AttrLifecycle    = attribute.Key("tether.lifecycle")
	AttrErrorCode    = attribute.Key("tether.error.code")
	AttrSingletons   = attribute.Key("tether.singletons")
)

// Tracer starts spans for container operations.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer from provider. A nil provider uses the global
// provider, which is a no-op unless the application installed one.
func NewTracer(provider trace.TracerProvider) *Tracer {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracer{tracer: provider.Tracer(InstrumentationName)}
}

// StartSpan starts a new span
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, sets its status and ends it.
func (t *Tracer) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}

	if err != nil {
		span.RecordError(err)
		if code := errors.Code(err); code != "" {
			span.SetAttributes(AttrErrorCode.String(code))
		}
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

// AddEvent adds an event to the span in ctx.
func (t *Tracer) AddEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).AddEvent(name, trace.WithAttributes(attrs...))
}

// TraceID returns the trace ID of the span in ctx, or "" without one.
func TraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
