// Package artifact selects and wraps the precomputed merge artifact used as
// the gateway's fallback data source. Other packages depend on the Source
// interface exposed here; only this package touches the infra-backed
// implementations.
package artifact

import (
	"fitrecon/internal/artifact/core"
	fsartifact "fitrecon/internal/infra/artifact/fs"
	memoryartifact "fitrecon/internal/infra/artifact/memory"

	"fitrecon/pkg/domain"
)

// Re-exported abstraction so callers do not import the core package directly.
type (
	Source = core.Source
	Driver = core.Driver
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

// ErrNotFound mirrors core.ErrNotFound for callers of this facade.
var ErrNotFound = core.ErrNotFound

// DefaultFilesystemPath is where the offline merge job leaves the combined
// artifact when no explicit path is configured.
const DefaultFilesystemPath = fsartifact.DefaultPath

// NewFilesystem returns a file-backed artifact source rooted at path.
func NewFilesystem(path string) *fsartifact.Source { return fsartifact.New(path) }

// NewMemory returns an in-memory artifact source seeded with records.
func NewMemory(records []domain.Participant) *memoryartifact.Source {
	return memoryartifact.New(records)
}
