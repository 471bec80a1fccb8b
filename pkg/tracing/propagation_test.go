package tracing_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traceware/traceware/pkg/tracing"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func spanContext(t *testing.T) (context.Context, trace.SpanContext) {
	t.Helper()
	tp, _ := newRecorder()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	span.End()
	return ctx, span.SpanContext()
}

func TestHeaderPairInject(t *testing.T) {
	ctx, sc := spanContext(t)

	header := make(http.Header)
	tracing.HeaderPair{}.Inject(ctx, propagation.HeaderCarrier(header))

	assert.Equal(t, sc.TraceID().String(), header.Get("traceId"))
	assert.Equal(t, sc.SpanID().String(), header.Get("spanId"))
}

func TestHeaderPairCustomNames(t *testing.T) {
	ctx, sc := spanContext(t)

	pair := tracing.HeaderPair{TraceHeader: "X-Trace-Id", SpanHeader: "X-Span-Id"}
	header := make(http.Header)
	pair.Inject(ctx, propagation.HeaderCarrier(header))

	assert.Equal(t, sc.TraceID().String(), header.Get("X-Trace-Id"))
	assert.Equal(t, sc.SpanID().String(), header.Get("X-Span-Id"))
	assert.Equal(t, []string{"X-Trace-Id", "X-Span-Id"}, pair.Fields())
}

func TestHeaderPairInjectWithoutSpan(t *testing.T) {
	header := make(http.Header)
	tracing.HeaderPair{}.Inject(context.Background(), propagation.HeaderCarrier(header))
	assert.Empty(t, header)
}

func TestHeaderPairExtract(t *testing.T) {
	ctx, sc := spanContext(t)

	header := make(http.Header)
	tracing.HeaderPair{}.Inject(ctx, propagation.HeaderCarrier(header))

	extracted := trace.SpanContextFromContext(
		tracing.HeaderPair{}.Extract(context.Background(), propagation.HeaderCarrier(header)))
	assert.Equal(t, sc.TraceID(), extracted.TraceID())
	assert.Equal(t, sc.SpanID(), extracted.SpanID())
	assert.True(t, extracted.IsRemote())
}

func TestHeaderPairExtractMalformed(t *testing.T) {
	header := make(http.Header)
	header.Set("traceId", "not-hex")
	header.Set("spanId", "also-not-hex")

	ctx := tracing.HeaderPair{}.Extract(context.Background(), propagation.HeaderCarrier(header))
	assert.False(t, trace.SpanContextFromContext(ctx).IsValid())
}

// Injection is a pure write: pre-existing carrier contents are overwritten,
// never consulted.
func TestInjectorOverwrites(t *testing.T) {
	ctx, sc := spanContext(t)

	injector, err := tracing.NewInjector(tracing.HeaderPair{})
	require.NoError(t, err)

	header := make(http.Header)
	header.Set("traceId", "stale")
	header.Set("spanId", "stale")
	injector.Inject(ctx, header)

	assert.Equal(t, sc.TraceID().String(), header.Get("traceId"))
	assert.Equal(t, sc.SpanID().String(), header.Get("spanId"))
}

func TestNewInjectorNilPropagator(t *testing.T) {
	_, err := tracing.NewInjector(nil)
	assert.ErrorIs(t, err, tracing.ErrNoPropagator)
}

func TestNewPropagator(t *testing.T) {
	p, err := tracing.NewPropagator(tracing.FormatTraceContext, "", "")
	require.NoError(t, err)
	assert.IsType(t, propagation.TraceContext{}, p)

	p, err = tracing.NewPropagator(tracing.FormatHeaderPair, "X-Trace-Id", "X-Span-Id")
	require.NoError(t, err)
	assert.Equal(t, tracing.HeaderPair{TraceHeader: "X-Trace-Id", SpanHeader: "X-Span-Id"}, p)

	_, err = tracing.NewPropagator("b3", "", "")
	assert.Error(t, err)
}
