package await

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

type OptionKey string

const WaitOptionKey OptionKey = "wait_options"

type WaitOptions struct {
	Timeout time.Duration
}

// WithWaitTimeout bounds every wait made with ctx, including waits made by
// units of work that inherit it. An explicit timeout argument takes precedence.
func WithWaitTimeout(ctx context.Context, timeout time.Duration) context.Context {
	return context.WithValue(ctx, WaitOptionKey, WaitOptions{Timeout: timeout})
}

func GetWaitTimeout(ctx context.Context, defaultTimeout time.Duration) time.Duration {
	options, ok := ctx.Value(WaitOptionKey).(WaitOptions)
	if ok {
		return options.Timeout
	}
	return defaultTimeout
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithNamePrefix sets the prefix of spawned goroutine names.
func WithNamePrefix(prefix string) Option {
	return func(b *Bridge) {
		b.prefix = prefix
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(b *Bridge) {
		if log != nil {
			b.log = log
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(b *Bridge) {
		b.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(b *Bridge) {
		if tracer != nil {
			b.tracer = tracer
		}
	}
}

// WithDefaultTimeout bounds waits that have neither an explicit timeout nor
// one carried by the context. Zero means unbounded.
func WithDefaultTimeout(timeout time.Duration) Option {
	return func(b *Bridge) {
		b.defaultTimeout = timeout
	}
}

// WithSpawnHook registers f to be called with the goroutine name every time
// the bridge spawns a goroutine.
func WithSpawnHook(f func(name string)) Option {
	return func(b *Bridge) {
		b.onSpawn = f
	}
}

// WithFatalHandler replaces the default fatal panic logging. f runs on the
// spawned goroutine before the panic is handed back to the caller.
func WithFatalHandler(f func(name string, p *PanicError)) Option {
	return func(b *Bridge) {
		b.onFatal = f
	}
}
