package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExpvarRecorderAggregates(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	ctx := context.Background()

	rec.Observe(ctx, "get_participants", true, 40*time.Millisecond)
	rec.Observe(ctx, "get_participants", true, 10*time.Millisecond)
	rec.Observe(ctx, "import_participants", false, 5*time.Millisecond)
	rec.Observe(ctx, "", true, time.Second) // ignored

	snap := rec.Snapshot()
	if got := snap.DurationsMS["get_participants"]; got != 50 {
		t.Fatalf("duration total = %v, want 50", got)
	}
	if snap.Results["get_participants"]["success"] != 2 {
		t.Fatalf("unexpected results %+v", snap.Results)
	}
	if snap.Results["import_participants"]["error"] != 1 {
		t.Fatalf("unexpected results %+v", snap.Results)
	}
	if _, ok := snap.Results[""]; ok {
		t.Fatalf("empty operation must be ignored")
	}
	if rec.Name() == "" {
		t.Fatalf("generated name must be non-empty")
	}
}

func TestPromRecorderExportsFamilies(t *testing.T) {
	rec := NewPromMetricsRecorder(nil)
	ctx := context.Background()

	rec.Observe(ctx, "get_participants", true, 15*time.Millisecond)
	rec.Observe(ctx, "get_participants", false, 5*time.Millisecond)

	families, err := rec.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	byName := map[string]bool{}
	for _, mf := range families {
		byName[mf.GetName()] = true
	}
	if !byName["fitrecon_gateway_operation_duration_seconds"] {
		t.Fatalf("duration histogram missing, families=%v", byName)
	}
	if !byName["fitrecon_gateway_operation_results_total"] {
		t.Fatalf("result counter missing, families=%v", byName)
	}

	if got := testutil.ToFloat64(rec.results.WithLabelValues("get_participants", "error")); got != 1 {
		t.Fatalf("error counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.results.WithLabelValues("get_participants", "success")); got != 1 {
		t.Fatalf("success counter = %v, want 1", got)
	}
}

func TestJSONTracerEmitsLines(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)

	_, span := tracer.Start(context.Background(), "import_participants")
	span.End(errors.New("collection locked"))
	_, span = tracer.Start(context.Background(), "cycle_stats")
	span.End(nil)

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(entries))
	}
	if entries[0].Status != "error" || entries[0].Error != "collection locked" {
		t.Fatalf("unexpected first span %+v", entries[0])
	}
	if entries[1].Status != "success" || entries[1].Error != "" {
		t.Fatalf("unexpected second span %+v", entries[1])
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d", len(lines))
	}
	var decoded JSONTraceEntry
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("line not JSON: %v", err)
	}
	if decoded.Operation != "import_participants" {
		t.Fatalf("unexpected line %+v", decoded)
	}
}

func TestJSONAuditLoggerStampsTime(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONAuditLogger(&buf)

	logger.Record(context.Background(), AuditEntry{Action: "hydrated", Count: 3})

	entries := logger.Entries()
	if len(entries) != 1 || entries[0].OccurredAt.IsZero() {
		t.Fatalf("entry missing timestamp: %+v", entries)
	}
	var decoded AuditEntry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("audit line not JSON: %v", err)
	}
	if decoded.Action != "hydrated" || decoded.Count != 3 {
		t.Fatalf("unexpected audit line %+v", decoded)
	}
}
