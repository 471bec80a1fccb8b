package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/traceware/traceware/pkg/interfaces"
)

// ClientMetrics tracks metrics for outbound HTTP requests.
//
// Metrics:
//   - <ns>_<sub>_requests_total: Request count by method and status
//   - <ns>_<sub>_request_duration_seconds: Request duration histogram
//   - <ns>_<sub>_requests_in_flight: Requests currently executing
//   - <ns>_<sub>_transport_errors_total: Transport failures by method
type ClientMetrics struct {
	// Total request count
	requestsTotal *prometheus.CounterVec

	// Request duration histogram
	requestDuration *prometheus.HistogramVec

	// Requests currently in flight
	inFlight prometheus.Gauge

	// Transport failure counter
	transportErrors *prometheus.CounterVec
}

// NewClientMetrics creates and registers client metrics with the provided
// registry.
func NewClientMetrics(namespace, subsystem string, registry *prometheus.Registry) *ClientMetrics {
	m := &ClientMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of outbound HTTP requests",
			},
			[]string{"method", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of outbound HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_in_flight",
				Help:      "Number of outbound HTTP requests currently executing",
			},
		),

		transportErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transport_errors_total",
				Help:      "Total number of transport-level failures",
			},
			[]string{"method"},
		),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.inFlight,
		m.transportErrors,
	)

	return m
}

// Client wraps an HTTP client and records one set of observations per
// attempt. Like the tracing middleware it never changes the outcome the
// underlying client produced.
type Client struct {
	client  interfaces.HTTPClient
	metrics *ClientMetrics
}

// NewClient creates a metrics client around the given underlying client
func NewClient(client interfaces.HTTPClient, metrics *ClientMetrics) *Client {
	return &Client{
		client:  client,
		metrics: metrics,
	}
}

// Do executes the request and records request count, duration, in-flight
// and transport-error metrics for this attempt.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.metrics.inFlight.Inc()
	defer c.metrics.inFlight.Dec()

	start := time.Now()
	resp, err := c.client.Do(req)
	c.metrics.requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.transportErrors.WithLabelValues(req.Method).Inc()
		c.metrics.requestsTotal.WithLabelValues(req.Method, "error").Inc()
		return nil, err
	}

	c.metrics.requestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}
