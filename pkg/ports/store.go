package ports

import (
	"context"

	"github.com/mbarros/inquira/pkg/domain"
)

// SnapshotStore defines the interface for persisting workflow snapshots.
// Snapshots are keyed by name; saving an existing name overwrites it.
type SnapshotStore interface {
	// Save persists a snapshot under its name.
	Save(ctx context.Context, snap domain.WorkflowSnapshot) error

	// Load retrieves a snapshot by name.
	// Returns domain.ErrSnapshotNotFound if the name does not exist.
	Load(ctx context.Context, name string) (domain.WorkflowSnapshot, error)

	// LoadLast retrieves the most recently saved snapshot.
	// Returns domain.ErrSnapshotNotFound when the store is empty.
	LoadLast(ctx context.Context) (domain.WorkflowSnapshot, error)

	// List returns every stored snapshot, most recently saved first.
	List(ctx context.Context) ([]domain.WorkflowSnapshot, error)

	// Delete removes a snapshot by name.
	Delete(ctx context.Context, name string) error
}

// RunStore defines the interface for persisting run state.
// This allows durable execution, enabling "Stop & Resume" questionnaires.
type RunStore interface {
	// Save persists the run keyed by its id.
	Save(ctx context.Context, run *domain.Run) error

	// Load retrieves a run by id.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.Run, error)

	// Delete removes a run by id.
	Delete(ctx context.Context, runID string) error
}
