package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
	"gopkg.in/yaml.v3"

	"github.com/ib-77/await/pkg/await"
)

// Config holds bridge configuration
type Config struct {
	NamePrefix     string        `yaml:"name_prefix"`
	DefaultTimeout time.Duration `yaml:"default_timeout"`
	LogLevel       string        `yaml:"log_level"`
	MetricsEnabled bool          `yaml:"metrics_enabled"`
	TracingEnabled bool          `yaml:"tracing_enabled"`
}

func Default() *Config {
	return &Config{
		NamePrefix:     await.DefaultNamePrefix,
		LogLevel:       "info",
		TracingEnabled: true,
	}
}

// Load reads a YAML file over the defaults, applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// FromEnv returns a copy of base with AWAIT_* environment variables applied.
// A nil base starts from Default.
func FromEnv(base *Config) *Config {
	if base == nil {
		base = Default()
	}
	cfg := *base
	cfg.NamePrefix = getEnv("AWAIT_NAME_PREFIX", cfg.NamePrefix)
	cfg.DefaultTimeout = getEnvDuration("AWAIT_DEFAULT_TIMEOUT", cfg.DefaultTimeout)
	cfg.LogLevel = getEnv("AWAIT_LOG_LEVEL", cfg.LogLevel)
	cfg.MetricsEnabled = getEnvBool("AWAIT_METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.TracingEnabled = getEnvBool("AWAIT_TRACING_ENABLED", cfg.TracingEnabled)
	return &cfg
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.NamePrefix) == "" {
		errs = append(errs, errors.New("name_prefix must not be empty"))
	}
	if c.DefaultTimeout < 0 {
		errs = append(errs, fmt.Errorf("default_timeout must not be negative, got %v", c.DefaultTimeout))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetLevel(level)
	return log, nil
}

// NewBridge builds a bridge from c. Metrics are registered with registry
// only when enabled.
func (c *Config) NewBridge(registry prometheus.Registerer) (*await.Bridge, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log, err := c.Logger()
	if err != nil {
		return nil, err
	}

	opts := []await.Option{
		await.WithNamePrefix(c.NamePrefix),
		await.WithDefaultTimeout(c.DefaultTimeout),
		await.WithLogger(log),
	}
	if c.MetricsEnabled {
		if registry == nil {
			return nil, errors.New("metrics enabled but no registry given")
		}
		opts = append(opts, await.WithMetrics(await.NewMetrics(registry)))
	}
	if c.TracingEnabled {
		opts = append(opts, await.WithTracer(otel.Tracer("github.com/ib-77/await")))
	} else {
		opts = append(opts, await.WithTracer(noop.NewTracerProvider().Tracer("")))
	}
	return await.New(opts...), nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
