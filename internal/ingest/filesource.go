package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource reads a catalog snapshot from a JSON file, the narrow
// contract with the out-of-scope upstream sync job.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed snapshot source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Snapshot implements Source.
func (f *FileSource) Snapshot(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Clean(f.path))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", f.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", f.path, err)
	}
	return &snap, nil
}
