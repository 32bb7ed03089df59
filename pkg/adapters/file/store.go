// Package file provides a filesystem-backed snapshot store. Snapshots are
// written as one JSON or YAML document per workflow name, matching the
// export format of the graph designer.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mbarros/inquira/pkg/domain"
)

// Format selects the on-disk encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SnapshotStore implements ports.SnapshotStore on the local filesystem.
type SnapshotStore struct {
	BasePath string
	Format   Format
}

// New creates a new SnapshotStore with the given base path.
// If basePath is empty, it defaults to ".inquira/workflows". The default
// encoding is JSON.
func New(basePath string, format Format) *SnapshotStore {
	if basePath == "" {
		basePath = filepath.Join(".inquira", "workflows")
	}
	if format == "" {
		format = FormatJSON
	}
	return &SnapshotStore{BasePath: basePath, Format: format}
}

func (s *SnapshotStore) path(name string) string {
	return filepath.Join(s.BasePath, safeName(name)+"."+string(s.Format))
}

// Save persists the snapshot atomically: write to a temp file in the same
// directory, fsync, then rename over the destination.
func (s *SnapshotStore) Save(ctx context.Context, snap domain.WorkflowSnapshot) error {
	if snap.Name == "" {
		return domain.ErrNameRequired
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure workflow directory: %w", err)
	}

	data, err := s.encode(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.BasePath, "tmp-*."+string(s.Format))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	dest := s.path(snap.Name)
	// os.Rename over an existing file fails on Windows; remove first.
	if _, err := os.Stat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("failed to replace existing snapshot: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load retrieves a snapshot by name.
func (s *SnapshotStore) Load(ctx context.Context, name string) (domain.WorkflowSnapshot, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.WorkflowSnapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.WorkflowSnapshot{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return s.decode(data)
}

// LoadLast retrieves the most recently saved snapshot.
func (s *SnapshotStore) LoadLast(ctx context.Context) (domain.WorkflowSnapshot, error) {
	all, err := s.List(ctx)
	if err != nil {
		return domain.WorkflowSnapshot{}, err
	}
	if len(all) == 0 {
		return domain.WorkflowSnapshot{}, domain.ErrSnapshotNotFound
	}
	return all[0], nil
}

// List returns every stored snapshot, most recently saved first.
func (s *SnapshotStore) List(ctx context.Context) ([]domain.WorkflowSnapshot, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var out []domain.WorkflowSnapshot
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "."+string(s.Format)) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.BasePath, entry.Name()))
		if err != nil {
			continue
		}
		snap, err := s.decode(data)
		if err != nil {
			continue
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

// Delete removes a snapshot file. Deleting a missing name is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot file: %w", err)
	}
	return nil
}

func (s *SnapshotStore) encode(snap domain.WorkflowSnapshot) ([]byte, error) {
	if s.Format == FormatYAML {
		return yaml.Marshal(snap)
	}
	return json.MarshalIndent(snap, "", "  ")
}

func (s *SnapshotStore) decode(data []byte) (domain.WorkflowSnapshot, error) {
	var snap domain.WorkflowSnapshot
	var err error
	if s.Format == FormatYAML {
		err = yaml.Unmarshal(data, &snap)
	} else {
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return domain.WorkflowSnapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// safeName maps a workflow name to a filename, replacing path separators.
func safeName(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return r.Replace(name)
}
