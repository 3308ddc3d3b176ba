package domain

import "context"

// Logical database/collection identity for the reconciliation data. Backends
// map these onto a file path, a table name, or a server-side namespace.
const (
	DatabaseName   = "Company-Management-System"
	CollectionName = "Fitness"
)

// DocumentStore is the minimal collaborator contract the gateway needs from
// a persisted document collection. Implementations must tolerate duplicate
// insert attempts from concurrent hydrators; reads never deduplicate.
type DocumentStore interface {
	// Connect establishes (or verifies) connectivity and prepares the
	// collection. It must be safe to call more than once.
	Connect(ctx context.Context) error
	// FindAll returns every persisted participant record. An empty
	// collection yields an empty slice, not an error.
	FindAll(ctx context.Context) ([]Participant, error)
	// InsertMany appends the given records and returns how many were stored.
	InsertMany(ctx context.Context, records []Participant) (int, error)
	// DeleteAll removes every record and returns how many were deleted.
	DeleteAll(ctx context.Context) (int, error)
	// Close releases backend resources.
	Close() error
}
