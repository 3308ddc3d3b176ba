// Package core defines the artifact-source abstraction shared by the
// concrete artifact backends and the higher-level facade.
package core

import (
	"context"
	"errors"

	"fitrecon/pkg/domain"
)

// Driver identifies a concrete artifact backend implementation.
type Driver string

const (
	// DriverFilesystem reads the artifact from a local JSON file (default, dev).
	DriverFilesystem Driver = "fs"
	// DriverS3 reads the artifact from an S3 / MinIO compatible object store.
	DriverS3 Driver = "s3"
	// DriverMemory serves records from process memory (tests).
	DriverMemory Driver = "memory"
)

// ErrNotFound reports that no artifact exists at the configured location.
// The gateway maps it to an explicit "no data" result, distinct from a
// connectivity failure.
var ErrNotFound = errors.New("artifact: not found")

// Source yields the precomputed merge result. Fetch returns ErrNotFound
// (possibly wrapped) when the artifact is absent; any other error means the
// artifact location was reachable but unreadable.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Participant, error)
	Driver() Driver
}
