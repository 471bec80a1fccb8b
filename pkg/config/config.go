package config

import (
	"fmt"
	"time"
)

// Propagation format names accepted in configuration.
const (
	FormatTraceContext = "tracecontext"
	FormatHeaderPair   = "headerpair"
)

// Config holds the full middleware configuration.
type Config struct {
	// Service identifies the application producing spans and the component
	// tag stamped on them.
	Service ServiceConfig `yaml:"service"`

	// Tracing configures the OTLP export pipeline.
	Tracing TracingConfig `yaml:"tracing"`

	// Propagation selects the header format carrying trace identity to the
	// remote peer.
	Propagation PropagationConfig `yaml:"propagation"`

	// Retry configures the retry driver.
	Retry RetryConfig `yaml:"retry"`

	// Metrics configures Prometheus metric names.
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServiceConfig identifies the service.
type ServiceConfig struct {
	Name      string `yaml:"name"`
	Component string `yaml:"component"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled           bool   `yaml:"enabled"`
	CollectorEndpoint string `yaml:"collector_endpoint"`
	Insecure          bool   `yaml:"insecure"`
}

// PropagationConfig selects and parameterizes the propagation format. The
// header names only apply to the headerpair format; they are format
// configuration, not part of the middleware contract.
type PropagationConfig struct {
	Format      string `yaml:"format"`
	TraceHeader string `yaml:"trace_header"`
	SpanHeader  string `yaml:"span_header"`
}

// RetryConfig configures the retry driver.
type RetryConfig struct {
	InitialInterval    time.Duration `yaml:"initial_interval"`
	BackoffCoefficient float64       `yaml:"backoff_coefficient"`
	MaximumInterval    time.Duration `yaml:"maximum_interval"`
	MaximumAttempts    int           `yaml:"maximum_attempts"`
}

// MetricsConfig configures Prometheus metric naming.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// ApplyDefaults fills unset fields with default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = "traceware"
	}
	if cfg.Service.Component == "" {
		cfg.Service.Component = "traceware"
	}
	if cfg.Tracing.CollectorEndpoint == "" {
		cfg.Tracing.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Propagation.Format == "" {
		cfg.Propagation.Format = FormatTraceContext
	}
	if cfg.Propagation.TraceHeader == "" {
		cfg.Propagation.TraceHeader = "traceId"
	}
	if cfg.Propagation.SpanHeader == "" {
		cfg.Propagation.SpanHeader = "spanId"
	}
	if cfg.Retry.InitialInterval == 0 {
		cfg.Retry.InitialInterval = 100 * time.Millisecond
	}
	if cfg.Retry.BackoffCoefficient == 0 {
		cfg.Retry.BackoffCoefficient = 2.0
	}
	if cfg.Retry.MaximumInterval == 0 {
		cfg.Retry.MaximumInterval = time.Second
	}
	if cfg.Retry.MaximumAttempts == 0 {
		cfg.Retry.MaximumAttempts = 3
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "traceware"
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = "client"
	}
}

// Validate checks the configuration for errors. An unknown propagation
// format is rejected here so it surfaces at construction, never per call.
func Validate(cfg *Config) error {
	switch cfg.Propagation.Format {
	case FormatTraceContext, FormatHeaderPair:
	default:
		return fmt.Errorf("unknown propagation format %q", cfg.Propagation.Format)
	}

	if cfg.Propagation.Format == FormatHeaderPair {
		if cfg.Propagation.TraceHeader == cfg.Propagation.SpanHeader {
			return fmt.Errorf("propagation trace and span headers must differ, both are %q",
				cfg.Propagation.TraceHeader)
		}
	}

	if cfg.Retry.MaximumAttempts < 1 {
		return fmt.Errorf("retry maximum_attempts must be at least 1, got %d", cfg.Retry.MaximumAttempts)
	}
	if cfg.Retry.BackoffCoefficient < 1 {
		return fmt.Errorf("retry backoff_coefficient must be at least 1, got %v", cfg.Retry.BackoffCoefficient)
	}

	if cfg.Tracing.Enabled && cfg.Tracing.CollectorEndpoint == "" {
		return fmt.Errorf("tracing is enabled but collector_endpoint is empty")
	}

	return nil
}
