package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/ports"
)

func TestSnapshotStoreContract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, NewSnapshotStore())
}

func TestRunStoreContract(t *testing.T) {
	ports.RunRunStoreContract(t, NewRunStore())
}

func TestSnapshotStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	snap := domain.WorkflowSnapshot{
		Name:    "wf",
		SavedAt: time.Now().UTC(),
		Graph: domain.GraphModel{
			Nodes: []domain.GraphNode{
				{ID: "n1", Kind: domain.NodeKindQuestion, Data: map[string]any{"label": "original"}},
			},
		},
	}
	require.NoError(t, store.Save(ctx, snap))

	// Mutating the saved value must not leak into the store.
	snap.Graph.Nodes[0].Data["label"] = "mutated"

	loaded, err := store.Load(ctx, "wf")
	require.NoError(t, err)
	assert.Equal(t, "original", loaded.Graph.Nodes[0].Data["label"])

	// Nor may mutating a loaded value.
	loaded.Graph.Nodes[0].Data["label"] = "mutated again"
	reloaded, err := store.Load(ctx, "wf")
	require.NoError(t, err)
	assert.Equal(t, "original", reloaded.Graph.Nodes[0].Data["label"])
}

func TestRunStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore()

	run := &domain.Run{
		ID:      "r1",
		Status:  domain.RunActive,
		Answers: map[string]any{"q1": "sim"},
	}
	require.NoError(t, store.Save(ctx, run))

	run.Answers["q1"] = "mutated"

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "sim", loaded.Answers["q1"])
}
