// Package config loads bridge configuration from a YAML file and AWAIT_*
// environment variables, and builds a configured await.Bridge from it.
//
//	cfg, err := config.Load("await.yaml")
//	if err != nil {
//		return err
//	}
//	bridge, err := cfg.NewBridge(prometheus.DefaultRegisterer)
//
// Environment variables override file values:
//
//	AWAIT_NAME_PREFIX       goroutine name prefix (default "await-")
//	AWAIT_DEFAULT_TIMEOUT   default wait bound, e.g. "5s" (default unbounded)
//	AWAIT_LOG_LEVEL         logrus level (default "info")
//	AWAIT_METRICS_ENABLED   register Prometheus metrics (default false)
//	AWAIT_TRACING_ENABLED   record OpenTelemetry spans (default true)
package config
