package tracing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/traceware/traceware/pkg/interfaces"
	"github.com/traceware/traceware/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/traceware/traceware/pkg/tracing"

// SpanNamer derives a span's operation name from the outgoing request.
type SpanNamer func(req *http.Request) string

// DefaultSpanNamer names spans "METHOD path", e.g. "GET /orders".
func DefaultSpanNamer(req *http.Request) string {
	path := req.URL.Path
	if path == "" {
		path = "/"
	}
	return req.Method + " " + path
}

// Client wraps an HTTP client so that every request executed through it
// produces one client span: started before the attempt, annotated by the
// registered decorators, carrying the propagated trace context in the
// outgoing headers, and ended when the attempt completes. The caller sees
// exactly the outcome the underlying client produced; tracing is purely
// observational.
//
// A Client is safe for concurrent use. The decorator registry, namer, and
// propagator are fixed at construction.
type Client struct {
	client     interfaces.HTTPClient
	tracer     trace.Tracer
	decorators []interfaces.SpanDecorator
	propagator propagation.TextMapPropagator
	injector   *Injector
	spanNamer  SpanNamer
	logger     logging.Logger
}

// Option represents an option for configuring the tracing client
type Option func(*Client)

// WithTracerProvider sets the provider used to create the client's tracer.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// WithDecorators replaces the decorator registry. The default registry
// contains only StandardTags. Order is registration order.
func WithDecorators(decorators ...interfaces.SpanDecorator) Option {
	return func(c *Client) {
		c.decorators = decorators
	}
}

// WithPropagator sets the propagation format used to inject trace context
// into outgoing headers. Defaults to W3C trace context.
func WithPropagator(propagator propagation.TextMapPropagator) Option {
	return func(c *Client) {
		c.propagator = propagator
	}
}

// WithSpanNamer overrides how spans are named. Useful for grouping spans
// under one fixed operation name across varying URLs.
func WithSpanNamer(namer SpanNamer) Option {
	return func(c *Client) {
		c.spanNamer = namer
	}
}

// WithLogger sets the logger used to report decorator failures
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a tracing client around the given underlying client. A nil
// propagator or namer is a configuration error and is rejected here rather
// than surfacing per call.
func New(client interfaces.HTTPClient, options ...Option) (*Client, error) {
	if client == nil {
		return nil, fmt.Errorf("tracing: underlying client is nil")
	}

	c := &Client{
		client:     client,
		tracer:     otel.GetTracerProvider().Tracer(tracerName),
		decorators: []interfaces.SpanDecorator{StandardTags{}},
		propagator: propagation.TraceContext{},
		spanNamer:  DefaultSpanNamer,
		logger:     logging.New(),
	}

	for _, option := range options {
		option(c)
	}

	if c.spanNamer == nil {
		return nil, fmt.Errorf("tracing: span namer is nil")
	}

	injector, err := NewInjector(c.propagator)
	if err != nil {
		return nil, err
	}
	c.injector = injector

	// Copy the registry so later mutation of the caller's slice cannot
	// change an in-use client.
	c.decorators = append([]interfaces.SpanDecorator(nil), c.decorators...)

	return c, nil
}

// Do executes the request with a span wrapped around this single attempt.
// The span's parent, if any, is the span active in the request context.
// Retry drivers re-invoking Do therefore get one span per attempt, each
// parented to the caller's span and unrelated to the other attempts.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx, span := c.tracer.Start(req.Context(), c.spanNamer(req),
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	for _, d := range c.decorators {
		c.runHook(ctx, func() { d.OnRequest(req, span) })
	}

	// Injection happens after decoration so hooks only ever observe the
	// caller's original headers.
	c.injector.Inject(ctx, req.Header)

	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		for _, d := range c.decorators {
			c.runHook(ctx, func() { d.OnError(err, span) })
		}
		return nil, err
	}

	for _, d := range c.decorators {
		c.runHook(ctx, func() { d.OnResponse(resp, span) })
	}

	return resp, nil
}

// runHook isolates a decorator hook: a panic inside it is logged and
// swallowed so it can never replace the transport outcome or leave the
// span unfinished.
func (c *Client) runHook(ctx context.Context, hook func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(ctx, "span decorator failed", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
			})
		}
	}()

	hook()
}
