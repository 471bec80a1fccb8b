package tracing

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoPropagator reports a tracing client constructed without a
// propagation format.
var ErrNoPropagator = errors.New("tracing: propagator is nil")

// Propagation format names accepted by NewPropagator.
const (
	FormatTraceContext = "tracecontext"
	FormatHeaderPair   = "headerpair"
)

// NewPropagator builds a propagation format by name. The header arguments
// only apply to the headerpair format; empty values mean the defaults. An
// unknown name is a configuration error.
func NewPropagator(format, traceHeader, spanHeader string) (propagation.TextMapPropagator, error) {
	switch format {
	case FormatTraceContext:
		return propagation.TraceContext{}, nil
	case FormatHeaderPair:
		return HeaderPair{TraceHeader: traceHeader, SpanHeader: spanHeader}, nil
	default:
		return nil, fmt.Errorf("tracing: unknown propagation format %q", format)
	}
}

// Default header names for the HeaderPair format.
const (
	DefaultTraceHeader = "traceId"
	DefaultSpanHeader  = "spanId"
)

// Injector serializes a span's trace identity into outgoing request
// headers using a configured propagation format. It only writes to the
// carrier; prior carrier contents are never consulted.
type Injector struct {
	propagator propagation.TextMapPropagator
}

// NewInjector creates an Injector for the given format. A nil format is a
// configuration error.
func NewInjector(propagator propagation.TextMapPropagator) (*Injector, error) {
	if propagator == nil {
		return nil, ErrNoPropagator
	}
	return &Injector{propagator: propagator}, nil
}

// Inject writes the trace identity of the span held by ctx into header.
func (i *Injector) Inject(ctx context.Context, header http.Header) {
	i.propagator.Inject(ctx, propagation.HeaderCarrier(header))
}

// HeaderPair is a propagation format carrying the trace and span
// identifiers as two plain textual header fields, readable by a remote
// peer without any envelope format. The field names are configuration, not
// contract; zero values mean DefaultTraceHeader and DefaultSpanHeader.
type HeaderPair struct {
	TraceHeader string
	SpanHeader  string
}

var _ propagation.TextMapPropagator = HeaderPair{}

func (p HeaderPair) traceHeader() string {
	if p.TraceHeader == "" {
		return DefaultTraceHeader
	}
	return p.TraceHeader
}

func (p HeaderPair) spanHeader() string {
	if p.SpanHeader == "" {
		return DefaultSpanHeader
	}
	return p.SpanHeader
}

// Inject writes the span context held by ctx into the carrier. Nothing is
// written when no valid span context is present.
func (p HeaderPair) Inject(ctx context.Context, carrier propagation.TextMapCarrier) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return
	}
	carrier.Set(p.traceHeader(), sc.TraceID().String())
	carrier.Set(p.spanHeader(), sc.SpanID().String())
}

// Extract reads a remote span context from the carrier, returning ctx
// unchanged when either field is absent or malformed.
func (p HeaderPair) Extract(ctx context.Context, carrier propagation.TextMapCarrier) context.Context {
	traceID, err := trace.TraceIDFromHex(carrier.Get(p.traceHeader()))
	if err != nil {
		return ctx
	}
	spanID, err := trace.SpanIDFromHex(carrier.Get(p.spanHeader()))
	if err != nil {
		return ctx
	}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
		Remote:  true,
	})
	return trace.ContextWithRemoteSpanContext(ctx, sc)
}

// Fields returns the header names this format writes.
func (p HeaderPair) Fields() []string {
	return []string{p.traceHeader(), p.spanHeader()}
}
