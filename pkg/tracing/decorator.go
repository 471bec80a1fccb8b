package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.opentelemetry.io/otel/trace"
)

// DefaultComponent is the component tag value when none is configured.
const DefaultComponent = "traceware"

var componentKey = attribute.Key("component")

// StandardTags is the built-in decorator. It attaches the canonical HTTP
// client attributes: component, http.method and http.url before the call,
// http.status_code on a response, and error status plus one error event on
// a transport failure.
type StandardTags struct {
	// Component identifies the client implementation producing the span.
	// Empty means DefaultComponent.
	Component string
}

func (d StandardTags) component() string {
	if d.Component == "" {
		return DefaultComponent
	}
	return d.Component
}

// OnRequest tags the span with everything derivable before the network
// call, so error spans still carry the attempted method and URL.
func (d StandardTags) OnRequest(req *http.Request, span trace.Span) {
	span.SetAttributes(
		componentKey.String(d.component()),
		semconv.HTTPMethodKey.String(req.Method),
		semconv.HTTPURLKey.String(req.URL.String()),
	)
}

// OnResponse tags the span with the HTTP status code.
func (d StandardTags) OnResponse(resp *http.Response, span trace.Span) {
	span.SetAttributes(semconv.HTTPStatusCodeKey.Int(resp.StatusCode))
}

// OnError marks the span as failed and records the failure as a single
// error event. No response-derived attributes are set on this path.
func (d StandardTags) OnError(err error, span trace.Span) {
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
