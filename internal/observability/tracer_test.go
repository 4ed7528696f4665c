package observability

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/xraph/tether/internal/errors"
)

func newRecordingTracer() (*Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewTracer(provider), recorder
}

func attributeValue(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracer_Success(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	ctx, span := tracer.StartSpan(context.Background(), "tether.resolve", AttrDependencyID.String("id-1"))
	assert.NotEmpty(t, TraceID(ctx))
	tracer.AddEvent(ctx, "constructed", AttrLifecycle.String("SINGLETON"))
	tracer.EndSpan(span, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "tether.resolve", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	v, ok := attributeValue(spans[0].Attributes(), AttrDependencyID)
	require.True(t, ok)
	assert.Equal(t, "id-1", v.AsString())

	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "constructed", spans[0].Events()[0].Name)
}

func TestTracer_ContainerError(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), "tether.build")
	tracer.EndSpan(span, errors.ErrCyclicDependencies("a", "b"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	v, ok := attributeValue(spans[0].Attributes(), AttrErrorCode)
	require.True(t, ok)
	assert.Equal(t, errors.CodeCyclicDependencies, v.AsString())

	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestTracer_ExternalError(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), "tether.resolve")
	tracer.EndSpan(span, stderrors.New("boom"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)

	_, ok := attributeValue(spans[0].Attributes(), AttrErrorCode)
	assert.False(t, ok)
}

func TestTracer_Nested(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	ctx, parent := tracer.StartSpan(context.Background(), "parent")
	childCtx, child := tracer.StartSpan(ctx, "child")
	assert.Equal(t, TraceID(ctx), TraceID(childCtx))
	tracer.EndSpan(child, nil)
	tracer.EndSpan(parent, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestTracer_GlobalProvider(t *testing.T) {
	tracer := NewTracer(nil)

	ctx, span := tracer.StartSpan(context.Background(), "noop")
	assert.NotPanics(t, func() { tracer.EndSpan(span, nil) })
	assert.Empty(t, TraceID(ctx))
	assert.NotPanics(t, func() { tracer.EndSpan(nil, nil) })
}
