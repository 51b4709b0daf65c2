package await

import (
	"context"
	"runtime/debug"
	"runtime/pprof"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultNamePrefix = "await-"
	tracerName        = "github.com/ib-77/await"
)

// Bridge runs units of work on their own goroutines and blocks the caller
// until they finish. A Bridge holds no per-invocation state and is safe for
// concurrent use.
type Bridge struct {
	prefix         string
	log            logrus.FieldLogger
	metrics        *Metrics
	tracer         trace.Tracer
	defaultTimeout time.Duration
	onSpawn        func(name string)
	onFatal        func(name string, p *PanicError)
	seq            atomic.Uint64
}

var std = New()

func New(opts ...Option) *Bridge {
	b := &Bridge{
		prefix: DefaultNamePrefix,
		log:    logrus.New(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Default returns the bridge used when a nil *Bridge is passed.
func Default() *Bridge {
	return std
}

func (b *Bridge) orDefault() *Bridge {
	if b == nil {
		return std
	}
	return b
}

func (b *Bridge) NamePrefix() string {
	return b.orDefault().prefix
}

func (b *Bridge) nextName() string {
	return b.prefix + strconv.FormatUint(b.seq.Add(1)-1, 10)
}

func (b *Bridge) timeout(ctx context.Context, timeout time.Duration) time.Duration {
	if timeout > 0 {
		return timeout
	}
	return GetWaitTimeout(ctx, b.defaultTimeout)
}

func (b *Bridge) start(ctx context.Context, op, path, name string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("await.op", op),
		attribute.String("await.path", path),
	}
	if name != "" {
		attrs = append(attrs, attribute.String("await.goroutine", name))
	}
	return b.tracer.Start(ctx, "await."+op, trace.WithAttributes(attrs...))
}

func (b *Bridge) finish(span trace.Span, op, path string, began time.Time, err error) {
	b.metrics.observe(op, path, err, time.Since(began))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, KindOf(err).String())
	}
	span.End()
}

func (b *Bridge) fatal(name string, p *PanicError) *PanicError {
	if b.onFatal != nil {
		b.onFatal(name, p)
		return p
	}
	b.log.WithFields(logrus.Fields{
		"goroutine": name,
		"panic":     p.Error(),
		"stack":     string(p.Stack),
	}).Error("fatal panic in unit of work")
	return p
}

func reject[T any](b *Bridge, op string, err error) Outcome[T] {
	out := Failure[T](&Error{Kind: InvalidArgument, Op: op, Err: err})
	b.metrics.observe(op, pathRejected, out.Err(), 0)
	return out
}

// invoke is the single execution path behind every entry point. The returned
// outcome is classified; fatal failures carry their *PanicError.
func invoke[T any](ctx context.Context, b *Bridge, op string, work Callable[T], timeout time.Duration) (out Outcome[T]) {
	b = b.orDefault()
	if work == nil {
		return reject[T](b, op, errNilWork)
	}
	if timeout < 0 {
		return reject[T](b, op, errNegativeWait)
	}
	timeout = b.timeout(ctx, timeout)
	if err := ctx.Err(); err != nil {
		out = Failure[T](&Error{Kind: WaitInterrupted, Op: op, Err: err})
		b.metrics.observe(op, pathRejected, out.Err(), 0)
		return out
	}

	name := b.nextName()
	began := time.Now()
	ctx, span := b.start(ctx, op, pathSpawned, name)
	defer func() { b.finish(span, op, pathSpawned, began, out.Err()) }()

	log := b.log.WithFields(logrus.Fields{"op": op, "goroutine": name})
	cell := make(chan Outcome[T], 1)
	spawn(context.WithoutCancel(ctx), b, op, name, work, cell)
	log.Debug("spawned goroutine")

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case out = <-cell:
		if out.IsEmpty() {
			return Failure[T](&Error{Kind: InvalidState, Op: op, Name: name, Err: errEmptyCell})
		}
		return out
	case <-ctx.Done():
		log.WithError(ctx.Err()).Warn("interrupted while waiting, goroutine left running")
		return Failure[T](&Error{Kind: WaitInterrupted, Op: op, Name: name, Err: ctx.Err()})
	case <-expired:
		log.WithField("timeout", timeout).Warn("wait timed out, goroutine left running")
		return Failure[T](&Error{Kind: Timeout, Op: op, Name: name, Err: context.DeadlineExceeded})
	}
}

// spawn starts the goroutine that runs work and writes exactly one outcome
// into cell. The cell is buffered so the goroutine never blocks on a caller
// that stopped waiting.
func spawn[T any](ctx context.Context, b *Bridge, op, name string, work Callable[T], cell chan<- Outcome[T]) {
	if b.onSpawn != nil {
		b.onSpawn(name)
	}
	b.metrics.spawned()

	go func() {
		var (
			out      Outcome[T]
			returned bool
		)
		defer func() {
			if !returned {
				p := &PanicError{Goexit: true, Stack: debug.Stack()}
				out = Failure[T](b.fatal(name, p))
			}
			cell <- out
			b.metrics.exited()
		}()

		pprof.Do(ctx, pprof.Labels(labelGoroutine, name), func(ctx context.Context) {
			out = capture(ctx, b, op, name, work)
		})
		returned = true
	}()
}

func capture[T any](ctx context.Context, b *Bridge, op, name string, work Callable[T]) Outcome[T] {
	v, p, err := call(ctx, work)
	if p != nil {
		kind, cause := classifyPanic(op, name, p)
		if kind == Fatal {
			b.fatal(name, p)
		}
		return Failure[T](cause)
	}
	if err != nil {
		_, cause := classify(op, name, err)
		return Failure[T](cause)
	}
	return Success(v)
}

// shortCircuit settles an already completed handle without spawning.
func shortCircuit[T any](ctx context.Context, b *Bridge, op string, h Handle[T]) (out Outcome[T]) {
	began := time.Now()
	_, span := b.start(ctx, op, pathShortCircuit, "")
	defer func() { b.finish(span, op, pathShortCircuit, began, out.Err()) }()

	b.log.WithField("op", op).Debug("handle already done, not spawning")

	if h.IsCancelled() {
		return Failure[T](&Error{Kind: Cancelled, Op: op})
	}
	v, err := h.ResultNow()
	if err != nil {
		_, cause := classify(op, "", err)
		return Failure[T](cause)
	}
	return Success(v)
}
