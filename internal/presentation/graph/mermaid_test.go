package graph_test

import (
	"strings"
	"testing"

	"github.com/mbarros/inquira/internal/presentation/graph"
	"github.com/mbarros/inquira/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		graph    domain.GraphModel
		contains []string
	}{
		{
			name: "Question Node Shape",
			graph: domain.GraphModel{
				Nodes: []domain.GraphNode{
					{ID: "n1", Kind: domain.NodeKindQuestion, Data: map[string]any{"id": "q1", "label": "Sente dor?"}},
				},
			},
			contains: []string{
				`n1[/"Sente dor?"/]`,
			},
		},
		{
			name: "Condition Node Shape",
			graph: domain.GraphModel{
				Nodes: []domain.GraphNode{
					{ID: "c1", Kind: domain.NodeKindCondition, Data: map[string]any{
						"conditions": []any{map[string]any{"id": "cond-1", "name": "Dor intensa"}},
					}},
				},
			},
			contains: []string{
				`c1{"Dor intensa"}`,
			},
		},
		{
			name: "Action Node Shape",
			graph: domain.GraphModel{
				Nodes: []domain.GraphNode{
					{ID: "a1", Kind: domain.NodeKindAction, Data: map[string]any{"type": "emitAlert"}},
				},
			},
			contains: []string{
				`a1[["emitAlert"]]`,
			},
		},
		{
			name: "Terminal Node Shapes",
			graph: domain.GraphModel{
				Nodes: []domain.GraphNode{
					{ID: "g1", Kind: domain.NodeKindScoreGate},
					{ID: "end1", Kind: domain.NodeKindEnd},
				},
			},
			contains: []string{
				`g1(("g1"))`,
				`end1(("end1"))`,
			},
		},
		{
			name: "ID Sanitization",
			graph: domain.GraphModel{
				Nodes: []domain.GraphNode{
					{ID: "path/to/node.v1", Kind: domain.NodeKindQuestion},
					{ID: "hyphen-ated", Kind: domain.NodeKindQuestion},
				},
			},
			contains: []string{
				`path_to_node_v1[/"path/to/node.v1"/]`,
				`hyphen_ated[/"hyphen-ated"/]`,
			},
		},
		{
			name: "Edge Label Escaping",
			graph: domain.GraphModel{
				Nodes: []domain.GraphNode{
					{ID: "a", Kind: domain.NodeKindQuestion},
					{ID: "b", Kind: domain.NodeKindQuestion},
				},
				Edges: []domain.GraphEdge{
					{ID: "e1", From: "a", To: "b", Label: `answer == "yes"`},
				},
			},
			contains: []string{
				`-- "answer == 'yes'" -->`,
			},
		},
		{
			name: "Condition ID As Fallback Label",
			graph: domain.GraphModel{
				Nodes: []domain.GraphNode{
					{ID: "a", Kind: domain.NodeKindCondition},
					{ID: "b", Kind: domain.NodeKindQuestion},
				},
				Edges: []domain.GraphEdge{
					{ID: "e1", From: "a", To: "b", ConditionID: "cond-1"},
				},
			},
			contains: []string{
				`a -- "cond-1" --> b`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.graph, nil)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}

func TestGenerateMermaidOverlay(t *testing.T) {
	g := domain.GraphModel{
		Nodes: []domain.GraphNode{
			{ID: "n-1", Kind: domain.NodeKindQuestion},
			{ID: "n-2", Kind: domain.NodeKindQuestion},
			{ID: "n-3", Kind: domain.NodeKindQuestion},
		},
	}
	got := graph.GenerateMermaid(g, &graph.Overlay{
		VisitedNodes: []string{"n-1", "n-2", "n-2"},
		CurrentNode:  "n-3",
	})

	for _, want := range []string{
		"classDef visited",
		"classDef current",
		"class n_1 visited;",
		"class n_3 current;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("overlay output missing %q:\n%s", want, got)
		}
	}

	// Duplicate visited ids collapse to one class line.
	if strings.Count(got, "class n_2 visited;") != 1 {
		t.Errorf("duplicate visited ids should be deduplicated:\n%s", got)
	}
}
