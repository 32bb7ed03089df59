package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/ports"
)

func TestSnapshotStoreContractJSON(t *testing.T) {
	ports.RunSnapshotStoreContract(t, New(t.TempDir(), FormatJSON))
}

func TestSnapshotStoreContractYAML(t *testing.T) {
	ports.RunSnapshotStoreContract(t, New(t.TempDir(), FormatYAML))
}

func TestSaveWritesOneFilePerWorkflow(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, FormatJSON)
	ctx := context.Background()

	snap := domain.WorkflowSnapshot{Name: "triagem", SavedAt: time.Now().UTC()}
	require.NoError(t, store.Save(ctx, snap))
	require.NoError(t, store.Save(ctx, snap), "re-saving overwrites in place")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "triagem.json", entries[0].Name())
}

func TestSaveSanitizesName(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, FormatJSON)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.WorkflowSnapshot{Name: "../escape", SavedAt: time.Now().UTC()}))

	_, err := os.Stat(filepath.Join(dir, "__escape.json"))
	assert.NoError(t, err, "path separators must be neutralized")
}

func TestSaveWithoutName(t *testing.T) {
	store := New(t.TempDir(), FormatJSON)
	err := store.Save(context.Background(), domain.WorkflowSnapshot{})
	assert.ErrorIs(t, err, domain.ErrNameRequired)
}

func TestLoadSurvivesRoundTrip(t *testing.T) {
	store := New(t.TempDir(), FormatYAML)
	ctx := context.Background()

	snap := domain.WorkflowSnapshot{
		Name:    "wf",
		SavedAt: time.Now().UTC().Truncate(time.Second),
		Graph: domain.GraphModel{
			Nodes: []domain.GraphNode{
				{ID: "n1", Kind: domain.NodeKindQuestion, Data: map[string]any{"id": "q1", "label": "Ok?"}},
			},
			Edges: []domain.GraphEdge{{ID: "e1", From: "n1", To: "n2", ConditionID: "c1"}},
		},
	}
	require.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Load(ctx, "wf")
	require.NoError(t, err)
	assert.Equal(t, snap.Name, loaded.Name)
	require.Len(t, loaded.Graph.Nodes, 1)
	assert.Equal(t, "q1", loaded.Graph.Nodes[0].Data["id"])
	require.Len(t, loaded.Graph.Edges, 1)
	assert.Equal(t, "c1", loaded.Graph.Edges[0].ConditionID)
}
