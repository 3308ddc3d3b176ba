package core

import (
	"context"
	"time"
)

// MetricsRecorder aggregates operation outcomes for operational visibility.
type MetricsRecorder interface {
	// Observe records one gateway operation outcome with its duration.
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts spans around gateway operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan finalizes a span; err == nil marks it successful.
type TraceSpan interface {
	End(err error)
}

// AuditLogger records notable gateway events (hydration outcomes, imports).
type AuditLogger interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditEntry captures one audit event.
type AuditEntry struct {
	Action     string    `json:"action"`
	Detail     string    `json:"detail,omitempty"`
	Count      int       `json:"count,omitempty"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

type noopAudit struct{}

func (noopAudit) Record(context.Context, AuditEntry) {}
