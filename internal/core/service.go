// Package core implements the reconciliation cache gateway: it serves merged
// participant data from the persisted document collection, falling back to
// the precomputed merge artifact and hydrating the collection on a cold
// cache.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fitrecon/internal/artifact"
	"fitrecon/internal/merge"
	"fitrecon/pkg/domain"
)

// Source identifies where a successful read was served from. Values match
// the wire contract of the original deployment.
type Source string

const (
	// SourceDatabase marks data served from the persisted collection.
	SourceDatabase Source = "database"
	// SourceArtifact marks data served from the precomputed artifact file.
	SourceArtifact Source = "json_file"
)

// Operation names used for metrics and traces.
const (
	opGetParticipants = "get_participants"
	opHydrate         = "hydrate"
	opImport          = "import_participants"
	opStats           = "cycle_stats"
)

// FetchResult is the gateway read response. Success distinguishes data
// presence from failure; Message carries the human-readable outcome either
// way, so callers never have to unwrap errors across this boundary.
type FetchResult struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    []domain.Participant `json:"data"`
	Source  Source               `json:"source,omitempty"`
	// HydrationWarning is set when artifact-sourced data was served but the
	// write-back into the collection failed. The read itself succeeded.
	HydrationWarning string `json:"hydration_warning,omitempty"`
}

// ImportResult is the gateway response for administrative re-seeding.
type ImportResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	InsertedCount int    `json:"insertedCount"`
}

// StatsResult wraps cohort statistics.
type StatsResult struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Stats   *merge.CohortStats `json:"stats"`
}

// Service is the reconciliation cache gateway. Its own logic is sequential;
// all I/O goes through context-aware collaborators so the host can serve
// other requests while a call is suspended.
type Service struct {
	store    domain.DocumentStore
	artifact artifact.Source
	metrics  MetricsRecorder
	tracer   Tracer
	audit    AuditLogger

	// hydrateMu serializes hydration within this process: concurrent
	// cold-cache readers re-check the collection after acquiring it, so the
	// artifact is inserted once. Cross-process duplicates remain possible
	// and the stores tolerate them.
	hydrateMu sync.Mutex
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithMetrics installs a metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(t Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithAuditLogger installs an audit logger.
func WithAuditLogger(a AuditLogger) Option {
	return func(s *Service) {
		if a != nil {
			s.audit = a
		}
	}
}

// New constructs a gateway over the given document store and artifact source.
func New(store domain.DocumentStore, source artifact.Source, opts ...Option) *Service {
	s := &Service{
		store:    store,
		artifact: source,
		metrics:  noopMetrics{},
		tracer:   noopTracer{},
		audit:    noopAudit{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetParticipants serves the merged participant set, preferring the
// persisted collection and falling back to the artifact on a cold cache.
// Connectivity failures yield an explicit failed result; they are never
// masked as empty data.
func (s *Service) GetParticipants(ctx context.Context) FetchResult {
	ctx, span, start := s.begin(ctx, opGetParticipants)
	result := s.getParticipants(ctx)
	s.end(ctx, opGetParticipants, span, start, resultErr(result.Success, result.Message))
	return result
}

func (s *Service) getParticipants(ctx context.Context) FetchResult {
	if err := s.store.Connect(ctx); err != nil {
		return connectivityFailure("connect document store", err)
	}
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return connectivityFailure("query participants", err)
	}
	if len(records) > 0 {
		return FetchResult{
			Success: true,
			Message: fmt.Sprintf("retrieved %d participant records from database", len(records)),
			Data:    records,
			Source:  SourceDatabase,
		}
	}
	return s.hydrateFromArtifact(ctx)
}

// hydrateFromArtifact materializes the precomputed merge result and writes
// it back into the collection. Within one GetParticipants call the insert
// always precedes returning artifact-sourced data, so a caller that sees
// Source == json_file knows the write-back was at least attempted.
func (s *Service) hydrateFromArtifact(ctx context.Context) FetchResult {
	s.hydrateMu.Lock()
	defer s.hydrateMu.Unlock()

	// Another request may have hydrated while we waited on the lock.
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return connectivityFailure("query participants", err)
	}
	if len(records) > 0 {
		return FetchResult{
			Success: true,
			Message: fmt.Sprintf("retrieved %d participant records from database", len(records)),
			Data:    records,
			Source:  SourceDatabase,
		}
	}

	records, err = s.artifact.Fetch(ctx)
	if errors.Is(err, artifact.ErrNotFound) {
		return FetchResult{
			Success: false,
			Message: domain.ErrNoData.Error() + " in database or artifact",
		}
	}
	if err != nil {
		return connectivityFailure("read artifact", err)
	}

	result := FetchResult{
		Success: true,
		Message: fmt.Sprintf("loaded %d participant records from artifact", len(records)),
		Data:    records,
		Source:  SourceArtifact,
	}

	start := time.Now()
	_, insertErr := s.store.InsertMany(ctx, records)
	s.metrics.Observe(ctx, opHydrate, insertErr == nil, time.Since(start))
	if insertErr != nil {
		// Best effort: the read still succeeds, the failure stays visible.
		hydErr := domain.HydrationError{Attempted: len(records), Err: insertErr}
		result.HydrationWarning = hydErr.Error()
		s.audit.Record(ctx, AuditEntry{
			Action: "hydration_failed",
			Detail: domain.CollectionName,
			Count:  len(records),
			Error:  insertErr.Error(),
		})
		return result
	}
	s.audit.Record(ctx, AuditEntry{
		Action: "hydrated",
		Detail: domain.CollectionName,
		Count:  len(records),
	})
	return result
}

// ImportParticipants destructively replaces the persisted collection:
// delete everything, then insert the provided records. The two steps are
// deliberately not wrapped in one transaction; a concurrent reader can
// observe a transient empty collection.
func (s *Service) ImportParticipants(ctx context.Context, records []domain.Participant) ImportResult {
	ctx, span, start := s.begin(ctx, opImport)
	result := s.importParticipants(ctx, records)
	s.end(ctx, opImport, span, start, resultErr(result.Success, result.Message))
	return result
}

func (s *Service) importParticipants(ctx context.Context, records []domain.Participant) ImportResult {
	if records == nil {
		err := domain.ValidationError{Message: "invalid data format: expected an array of participant records"}
		return ImportResult{Success: false, Message: err.Error()}
	}
	if err := s.store.Connect(ctx); err != nil {
		return ImportResult{Success: false, Message: connectivityMessage("connect document store", err)}
	}
	if _, err := s.store.DeleteAll(ctx); err != nil {
		return ImportResult{Success: false, Message: connectivityMessage("clear participants", err)}
	}
	inserted, err := s.store.InsertMany(ctx, records)
	if err != nil {
		return ImportResult{Success: false, Message: connectivityMessage("insert participants", err)}
	}
	s.audit.Record(ctx, AuditEntry{
		Action: "imported",
		Detail: domain.CollectionName,
		Count:  inserted,
	})
	return ImportResult{
		Success:       true,
		Message:       fmt.Sprintf("successfully imported %d participant records", inserted),
		InsertedCount: inserted,
	}
}

// CycleStats computes cohort counts for the two active cycle labels over the
// persisted collection.
func (s *Service) CycleStats(ctx context.Context, cycleA, cycleB string) StatsResult {
	ctx, span, start := s.begin(ctx, opStats)
	result := s.cycleStats(ctx, cycleA, cycleB)
	s.end(ctx, opStats, span, start, resultErr(result.Success, result.Message))
	return result
}

func (s *Service) cycleStats(ctx context.Context, cycleA, cycleB string) StatsResult {
	if err := s.store.Connect(ctx); err != nil {
		return StatsResult{Success: false, Message: connectivityMessage("connect document store", err)}
	}
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return StatsResult{Success: false, Message: connectivityMessage("query participants", err)}
	}
	stats := merge.ComputeStats(records, cycleA, cycleB)
	return StatsResult{
		Success: true,
		Message: "participant statistics computed",
		Stats:   &stats,
	}
}

func (s *Service) begin(ctx context.Context, op string) (context.Context, TraceSpan, time.Time) {
	ctx, span := s.tracer.Start(ctx, op)
	return ctx, span, time.Now()
}

func (s *Service) end(ctx context.Context, op string, span TraceSpan, start time.Time, err error) {
	s.metrics.Observe(ctx, op, err == nil, time.Since(start))
	span.End(err)
}

func connectivityFailure(op string, err error) FetchResult {
	return FetchResult{Success: false, Message: connectivityMessage(op, err)}
}

func connectivityMessage(op string, err error) string {
	return domain.ConnectivityError{Op: op, Err: err}.Error()
}

// resultErr converts a structured failure back into an error for spans and
// metrics without leaking it across the gateway boundary.
func resultErr(success bool, message string) error {
	if success {
		return nil
	}
	return errors.New(message)
}
