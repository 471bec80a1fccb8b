package interfaces

import "net/http"

// HTTPClient represents the underlying transport a middleware wraps.
// *http.Client satisfies it, as does any other implementation that can
// execute a request and return a response or a transport error.
type HTTPClient interface {
	// Do executes a single request. A non-nil error means the request
	// never produced a response (connection refused, DNS failure,
	// timeout); a non-2xx status is not an error.
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClientFunc adapts a function to the HTTPClient interface.
type HTTPClientFunc func(req *http.Request) (*http.Response, error)

// Do executes the function.
func (f HTTPClientFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
