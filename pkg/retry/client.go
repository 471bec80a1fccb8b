package retry

import (
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/traceware/traceware/pkg/interfaces"
	"github.com/traceware/traceware/pkg/logging"
)

// Client re-invokes a wrapped HTTP client once per attempt with exponential
// backoff between attempts. Only transport failures are retried; any
// response, whatever its status, ends the call. Middleware below this one
// (tracing, metrics) therefore observes every attempt individually.
type Client struct {
	client interfaces.HTTPClient
	policy *Policy
	logger logging.Logger
}

// ClientOption represents an option for configuring the retry client
type ClientOption func(*Client)

// WithPolicy sets the retry policy
func WithPolicy(policy *Policy) ClientOption {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithLogger sets the logger used to report failed attempts
func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a retrying client around the given underlying client
func NewClient(client interfaces.HTTPClient, options ...ClientOption) *Client {
	c := &Client{
		client: client,
		policy: NewPolicy(),
		logger: logging.New(),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Do executes the request, retrying on transport failure up to the policy's
// attempt count. Requests whose body cannot be replayed are sent exactly
// once.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Body != nil && req.GetBody == nil {
		return c.client.Do(req)
	}

	callID := uuid.NewString()
	attempt := 0

	var resp *http.Response
	operation := func() error {
		attempt++
		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return backoff.Permanent(err)
			}
			req.Body = body
		}

		r, err := c.client.Do(req)
		if err != nil {
			c.logger.Debug(req.Context(), "attempt failed", map[string]interface{}{
				"call_id": callID,
				"attempt": attempt,
				"method":  req.Method,
				"url":     req.URL.String(),
				"error":   err.Error(),
			})
			return err
		}

		resp = r
		return nil
	}

	if err := backoff.Retry(operation, c.policy.backoff(req.Context())); err != nil {
		return nil, err
	}

	return resp, nil
}
