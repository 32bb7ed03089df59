package domain

import "time"

// NodeKind identifies the control-flow role of a graph node.
type NodeKind string

const (
	NodeKindQuestion  NodeKind = "question"
	NodeKindCondition NodeKind = "condition"
	NodeKindAction    NodeKind = "action"
	NodeKindScoreGate NodeKind = "scoreGate"
	NodeKindEnd       NodeKind = "end"
)

// Point is the designer canvas position of a node. It is carried through
// serialization for the authoring UI but is irrelevant to evaluation.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// GraphNode is a single node of the questionnaire graph. Data holds the
// kind-specific record (see QuestionData, ConditionNodeData, ActionData,
// ScoreGateData, EndData) and is decoded on demand via the typed accessors
// in decode.go.
type GraphNode struct {
	ID       string         `json:"id" yaml:"id"`
	Kind     NodeKind       `json:"kind" yaml:"kind"`
	Data     map[string]any `json:"data" yaml:"data"`
	Position Point          `json:"position" yaml:"position"`
}

// GraphEdge connects two nodes. An edge leaving a condition or end node with
// a ConditionID fires only when that named condition evaluates true; an edge
// without one is the unconditional/fallback edge.
type GraphEdge struct {
	ID          string `json:"id" yaml:"id"`
	From        string `json:"from" yaml:"from"`
	To          string `json:"to" yaml:"to"`
	ConditionID string `json:"conditionId,omitempty" yaml:"conditionId,omitempty"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
}

// GraphModel is the complete authored questionnaire graph.
type GraphModel struct {
	Nodes []GraphNode `json:"nodes" yaml:"nodes"`
	Edges []GraphEdge `json:"edges" yaml:"edges"`
}

// NodeByID returns the node with the given id, or false when absent.
func (g GraphModel) NodeByID(id string) (GraphNode, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return GraphNode{}, false
}

// EdgesFrom returns the outgoing edges of a node in stored order.
// Edge order is part of the graph's semantics: traversal scans edges in
// exactly this order.
func (g GraphModel) EdgesFrom(nodeID string) []GraphEdge {
	var out []GraphEdge
	for _, e := range g.Edges {
		if e.From == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// EdgesTo returns the incoming edges of a node in stored order.
func (g GraphModel) EdgesTo(nodeID string) []GraphEdge {
	var out []GraphEdge
	for _, e := range g.Edges {
		if e.To == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// HasEdgesFrom reports whether any edge leaves the node.
func (g GraphModel) HasEdgesFrom(nodeID string) bool {
	for _, e := range g.Edges {
		if e.From == nodeID {
			return true
		}
	}
	return false
}

// NodesByKind returns the nodes of one kind in stored order.
func (g GraphModel) NodesByKind(kind NodeKind) []GraphNode {
	var out []GraphNode
	for _, n := range g.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// WorkflowSnapshot is the persistence unit produced by the designer and
// consumed by the engine. The engine only reads Graph; the rest is metadata
// for listing and display.
type WorkflowSnapshot struct {
	Name     string     `json:"name" yaml:"name"`
	Graph    GraphModel `json:"graph" yaml:"graph"`
	SavedAt  time.Time  `json:"savedAt" yaml:"savedAt"`
	FormName string     `json:"formName,omitempty" yaml:"formName,omitempty"`
}
