package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks around batch submissions for logging and
// metrics.
//
// Implementations should be fast and non-blocking; heavy work should be
// done asynchronously so as not to delay the request path. Callbacks
// never receive credentials.
type Observer interface {
	// OnSendStart is called once per Send call, after validation and
	// signing succeeded, before the transport is invoked.
	OnSendStart(ctx context.Context, opCount int)

	// OnSendCompleted is called when a Send call produced a BatchResult,
	// including results with per-operation failures.
	OnSendCompleted(ctx context.Context, res *BatchResult, duration time.Duration)

	// OnSendFailed is called when a Send call aborted with no
	// BatchResult: validation, signing, transport, or protocol failure.
	OnSendFailed(ctx context.Context, err error, duration time.Duration)

	// OnOperationFailed is called once for each operation the engine
	// reported as failed, after OnSendCompleted.
	OnOperationFailed(ctx context.Context, res OpResult)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnSendStart(ctx context.Context, opCount int)                           {}
func (NoopObserver) OnSendCompleted(ctx context.Context, res *BatchResult, d time.Duration) {}
func (NoopObserver) OnSendFailed(ctx context.Context, err error, d time.Duration)           {}
func (NoopObserver) OnOperationFailed(ctx context.Context, res OpResult)                    {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnSendStart(ctx context.Context, opCount int) {
	for _, o := range c.observers {
		o.OnSendStart(ctx, opCount)
	}
}

func (c *CompositeObserver) OnSendCompleted(ctx context.Context, res *BatchResult, d time.Duration) {
	for _, o := range c.observers {
		o.OnSendCompleted(ctx, res, d)
	}
}

func (c *CompositeObserver) OnSendFailed(ctx context.Context, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnSendFailed(ctx, err, d)
	}
}

func (c *CompositeObserver) OnOperationFailed(ctx context.Context, res OpResult) {
	for _, o := range c.observers {
		o.OnOperationFailed(ctx, res)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs batch lifecycle
// events using the provided slog.Logger. If logger is nil,
// slog.Default() is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnSendStart(ctx context.Context, opCount int) {
	o.Logger.DebugContext(ctx, "batch_send",
		slog.Int("operations", opCount),
	)
}

func (o *LoggingObserver) OnSendCompleted(ctx context.Context, res *BatchResult, d time.Duration) {
	level := slog.LevelInfo
	if !res.AllSuccess() {
		level = slog.LevelWarn
	}
	attrs := []any{
		slog.Int("operations", len(res.Results)),
		slog.Int("failures", len(res.Failures())),
		slog.Duration("duration", d),
	}
	if res.CorrelationErr != nil {
		attrs = append(attrs, slog.String("correlation_error", res.CorrelationErr.Reason))
	}
	o.Logger.Log(ctx, level, "batch_completed", attrs...)
}

func (o *LoggingObserver) OnSendFailed(ctx context.Context, err error, d time.Duration) {
	o.Logger.ErrorContext(ctx, "batch_failed",
		slog.Duration("duration", d),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnOperationFailed(ctx context.Context, res OpResult) {
	o.Logger.WarnContext(ctx, "operation_failed",
		slog.String("type", string(res.Op.Type)),
		slog.String("conv_id", res.Op.ConvID),
		slog.String("id", res.Op.Identifier()),
		slog.Any("error", res.Err()),
	)
}

// BasicMetrics collects simple counters and aggregate send durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	batchesSent       atomic.Int64
	batchesCompleted  atomic.Int64
	batchesFailed     atomic.Int64
	operationsOK      atomic.Int64
	operationsFailed  atomic.Int64
	totalSendDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	BatchesSent      int64
	BatchesCompleted int64
	BatchesFailed    int64

	OperationsOK     int64
	OperationsFailed int64
	AvgSendDuration  time.Duration
}

func (m *BasicMetrics) OnSendStart(ctx context.Context, opCount int) {
	m.batchesSent.Add(1)
}

func (m *BasicMetrics) OnSendCompleted(ctx context.Context, res *BatchResult, d time.Duration) {
	m.batchesCompleted.Add(1)
	m.totalSendDuration.Add(d.Nanoseconds())
	for _, r := range res.Results {
		if r.IsSuccess() {
			m.operationsOK.Add(1)
		} else {
			m.operationsFailed.Add(1)
		}
	}
}

func (m *BasicMetrics) OnSendFailed(ctx context.Context, err error, d time.Duration) {
	m.batchesFailed.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	completed := m.batchesCompleted.Load()
	totalNs := m.totalSendDuration.Load()

	var avg time.Duration
	if completed > 0 {
		avg = time.Duration(totalNs / completed)
	}

	return BasicMetricsSnapshot{
		BatchesSent:      m.batchesSent.Load(),
		BatchesCompleted: completed,
		BatchesFailed:    m.batchesFailed.Load(),
		OperationsOK:     m.operationsOK.Load(),
		OperationsFailed: m.operationsFailed.Load(),
		AvgSendDuration:  avg,
	}
}
