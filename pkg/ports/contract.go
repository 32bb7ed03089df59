package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/inquira/pkg/domain"
)

// RunSnapshotStoreContract runs a suite of tests verifying that a
// SnapshotStore implementation adheres to the interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	graph := domain.GraphModel{
		Nodes: []domain.GraphNode{
			{ID: "n1", Kind: domain.NodeKindQuestion, Data: map[string]any{"id": "q1", "label": "Ok?", "seq": 1}},
		},
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.WorkflowSnapshot{Name: name, Graph: graph, SavedAt: time.Now().UTC()}
		require.NoError(t, store.Save(ctx, snap))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, name, loaded.Name)
		require.Len(t, loaded.Graph.Nodes, 1)
		assert.Equal(t, "n1", loaded.Graph.Nodes[0].ID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("LoadLast and List ordering", func(t *testing.T) {
		older := domain.WorkflowSnapshot{Name: name + "-older", Graph: graph, SavedAt: time.Now().Add(-time.Hour).UTC()}
		newer := domain.WorkflowSnapshot{Name: name + "-newer", Graph: graph, SavedAt: time.Now().UTC()}
		require.NoError(t, store.Save(ctx, older))
		require.NoError(t, store.Save(ctx, newer))
		defer func() {
			_ = store.Delete(ctx, older.Name)
			_ = store.Delete(ctx, newer.Name)
		}()

		last, err := store.LoadLast(ctx)
		require.NoError(t, err)
		assert.Equal(t, newer.Name, last.Name)

		all, err := store.List(ctx)
		require.NoError(t, err)
		var names []string
		for _, s := range all {
			names = append(names, s.Name)
		}
		assert.Contains(t, names, older.Name)
		assert.Contains(t, names, newer.Name)
		// Most recent first.
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i-1].SavedAt.Before(all[i].SavedAt))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		snap := domain.WorkflowSnapshot{Name: name, Graph: graph, SavedAt: time.Now().UTC()}
		require.NoError(t, store.Save(ctx, snap))
		require.NoError(t, store.Delete(ctx, name))

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})
}

// RunRunStoreContract runs a suite of tests verifying that a RunStore
// implementation adheres to the interface contract.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		run := &domain.Run{
			ID:           runID,
			WorkflowName: "triagem",
			StartedAt:    time.Now().UTC(),
			Questions: []domain.RunnerQuestion{
				{NodeID: "n1", QuestionID: "q1", Label: "Ok?", Seq: 1},
			},
			Status:           domain.RunActive,
			Answers:          map[string]any{"q1": "sim"},
			Visited:          map[string]bool{"q1": true},
			ConditionResults: map[string]bool{"c1": true},
		}
		require.NoError(t, store.Save(ctx, run))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, run.ID, loaded.ID)
		assert.Equal(t, "sim", loaded.Answers["q1"])
		assert.True(t, loaded.Visited["q1"])
		assert.True(t, loaded.ConditionResults["c1"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &domain.Run{ID: runID, Status: domain.RunActive}))
		require.NoError(t, store.Delete(ctx, runID))

		_, err := store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})
}
