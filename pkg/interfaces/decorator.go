package interfaces

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// SpanDecorator annotates the span created for one request attempt.
// Implementations read the request, response, or error and mutate only the
// span; they must not modify the request or response. Decorators are applied
// in registration order and must not depend on state set by a decorator
// registered after them.
type SpanDecorator interface {
	// OnRequest runs before the request is sent, and before trace context
	// is injected into the outgoing headers.
	OnRequest(req *http.Request, span trace.Span)

	// OnResponse runs after the underlying client returned a response.
	OnResponse(resp *http.Response, span trace.Span)

	// OnError runs when the underlying client signaled a transport
	// failure. No response exists on this path.
	OnError(err error, span trace.Span)
}
