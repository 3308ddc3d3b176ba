package core

import (
	"fmt"
	"os"
	"strings"

	memorystore "fitrecon/internal/infra/persistence/memory"
	postgresstore "fitrecon/internal/infra/persistence/postgres"
	sqlitestore "fitrecon/internal/infra/persistence/sqlite"
	"fitrecon/pkg/domain"
)

// StorageDriver selects a document store backend.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverSQLite   StorageDriver = "sqlite"
	StorageDriverPostgres StorageDriver = "postgres"
)

// Environment variables controlling storage selection.
const (
	EnvStorageDriver = "FITRECON_STORAGE_DRIVER"
	EnvSQLitePath    = "FITRECON_SQLITE_PATH"
	EnvPostgresDSN   = "FITRECON_POSTGRES_DSN"
)

// OpenDocumentStore builds the document store configured by the environment.
// The default is the embedded SQLite backend so a fresh deployment works
// without external services.
func OpenDocumentStore() (domain.DocumentStore, error) {
	driver := StorageDriver(strings.ToLower(strings.TrimSpace(os.Getenv(EnvStorageDriver))))
	if driver == "" {
		driver = StorageDriverSQLite
	}
	switch driver {
	case StorageDriverMemory:
		return memorystore.NewStore(), nil
	case StorageDriverSQLite:
		return sqlitestore.New(os.Getenv(EnvSQLitePath))
	case StorageDriverPostgres:
		return postgresstore.New(os.Getenv(EnvPostgresDSN))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
