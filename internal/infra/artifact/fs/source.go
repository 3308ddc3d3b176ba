// Package fs implements the artifact source over a local JSON file, the
// default for development and single-host deployments. The same type also
// writes artifacts, which is how the offline merge job publishes its output.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fitrecon/internal/artifact/core"
	"fitrecon/pkg/domain"
)

// DefaultPath is where the offline merge job leaves the combined artifact.
const DefaultPath = "./fft_combined.json"

// Source reads and writes the merge artifact at a fixed file path.
type Source struct {
	path string
}

// New returns a file-backed artifact source at path (DefaultPath when empty).
func New(path string) *Source {
	if path == "" {
		path = DefaultPath
	}
	return &Source{path: path}
}

// Path returns the configured artifact location.
func (s *Source) Path() string { return s.path }

func (s *Source) Driver() core.Driver { return core.DriverFilesystem }

// Fetch reads and decodes the artifact. A missing file maps to
// core.ErrNotFound; a present but undecodable file is an error.
func (s *Source) Fetch(_ context.Context) ([]domain.Participant, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var records []domain.Participant
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", s.path, err)
	}
	return records, nil
}

// Write serializes records as indented JSON and atomically replaces the
// artifact file.
func (s *Source) Write(_ context.Context, records []domain.Participant) error {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
