// Package memory provides in-memory implementations of the persistence
// ports, used as defaults and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mbarros/inquira/pkg/domain"
)

// SnapshotStore implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type SnapshotStore struct {
	data map[string]domain.WorkflowSnapshot
	mu   sync.RWMutex
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		data: make(map[string]domain.WorkflowSnapshot),
	}
}

// Save persists the snapshot in memory, overwriting any previous snapshot
// with the same name.
func (s *SnapshotStore) Save(ctx context.Context, snap domain.WorkflowSnapshot) error {
	if snap.Name == "" {
		return domain.ErrNameRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[snap.Name] = copySnapshot(snap)
	return nil
}

// Load retrieves a snapshot by name.
func (s *SnapshotStore) Load(ctx context.Context, name string) (domain.WorkflowSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[name]
	if !ok {
		return domain.WorkflowSnapshot{}, domain.ErrSnapshotNotFound
	}
	return copySnapshot(snap), nil
}

// LoadLast retrieves the most recently saved snapshot.
func (s *SnapshotStore) LoadLast(ctx context.Context) (domain.WorkflowSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last domain.WorkflowSnapshot
	found := false
	for _, snap := range s.data {
		if !found || snap.SavedAt.After(last.SavedAt) {
			last = snap
			found = true
		}
	}
	if !found {
		return domain.WorkflowSnapshot{}, domain.ErrSnapshotNotFound
	}
	return copySnapshot(last), nil
}

// List returns every stored snapshot, most recently saved first.
func (s *SnapshotStore) List(ctx context.Context) ([]domain.WorkflowSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.WorkflowSnapshot, 0, len(s.data))
	for _, snap := range s.data {
		out = append(out, copySnapshot(snap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

// Delete removes a snapshot by name.
func (s *SnapshotStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// RunStore implements ports.RunStore in memory.
// Safe for concurrent use.
type RunStore struct {
	data map[string]*domain.Run
	mu   sync.RWMutex
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		data: make(map[string]*domain.Run),
	}
}

// Save persists the run in memory.
func (s *RunStore) Save(ctx context.Context, run *domain.Run) error {
	copied := copyRun(run)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[run.ID] = copied
	return nil
}

// Load retrieves the run from memory.
func (s *RunStore) Load(ctx context.Context, runID string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.data[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return copyRun(run), nil
}

// Delete removes the run.
func (s *RunStore) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// copySnapshot isolates stored snapshots from caller mutation, similar to
// a serialization round trip.
func copySnapshot(snap domain.WorkflowSnapshot) domain.WorkflowSnapshot {
	out := snap
	out.Graph.Nodes = make([]domain.GraphNode, len(snap.Graph.Nodes))
	for i, n := range snap.Graph.Nodes {
		copied := n
		copied.Data = make(map[string]any, len(n.Data))
		for k, v := range n.Data {
			copied.Data[k] = v
		}
		out.Graph.Nodes[i] = copied
	}
	out.Graph.Edges = append([]domain.GraphEdge(nil), snap.Graph.Edges...)
	return out
}

// copyRun isolates stored runs from caller mutation by pointer.
func copyRun(run *domain.Run) *domain.Run {
	copied := *run
	copied.Questions = append([]domain.RunnerQuestion(nil), run.Questions...)
	copied.Answers = make(map[string]any, len(run.Answers))
	for k, v := range run.Answers {
		copied.Answers[k] = v
	}
	copied.Visited = make(map[string]bool, len(run.Visited))
	for k, v := range run.Visited {
		copied.Visited[k] = v
	}
	copied.ConditionResults = make(map[string]bool, len(run.ConditionResults))
	for k, v := range run.ConditionResults {
		copied.ConditionResults[k] = v
	}
	return &copied
}
