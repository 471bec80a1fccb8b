package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path,
// applies defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides of the form TRACEWARE_SECTION_FIELD
// (e.g. TRACEWARE_TRACING_COLLECTOR_ENDPOINT). Environment variables take
// precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("TRACEWARE_SERVICE_NAME"); val != "" {
		cfg.Service.Name = val
	}
	if val := os.Getenv("TRACEWARE_SERVICE_COMPONENT"); val != "" {
		cfg.Service.Component = val
	}

	if val := os.Getenv("TRACEWARE_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("TRACEWARE_TRACING_COLLECTOR_ENDPOINT"); val != "" {
		cfg.Tracing.CollectorEndpoint = val
	}
	if val := os.Getenv("TRACEWARE_TRACING_INSECURE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tracing.Insecure = b
		}
	}

	if val := os.Getenv("TRACEWARE_PROPAGATION_FORMAT"); val != "" {
		cfg.Propagation.Format = val
	}
	if val := os.Getenv("TRACEWARE_PROPAGATION_TRACE_HEADER"); val != "" {
		cfg.Propagation.TraceHeader = val
	}
	if val := os.Getenv("TRACEWARE_PROPAGATION_SPAN_HEADER"); val != "" {
		cfg.Propagation.SpanHeader = val
	}

	if val := os.Getenv("TRACEWARE_RETRY_INITIAL_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retry.InitialInterval = d
		}
	}
	if val := os.Getenv("TRACEWARE_RETRY_MAXIMUM_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retry.MaximumInterval = d
		}
	}
	if val := os.Getenv("TRACEWARE_RETRY_MAXIMUM_ATTEMPTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retry.MaximumAttempts = i
		}
	}

	if val := os.Getenv("TRACEWARE_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("TRACEWARE_METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}
	if val := os.Getenv("TRACEWARE_METRICS_SUBSYSTEM"); val != "" {
		cfg.Metrics.Subsystem = val
	}
}
