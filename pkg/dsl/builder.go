package dsl

import (
	"fmt"

	"github.com/mbarros/inquira/pkg/domain"
)

// Builder manages the graph construction. Nodes keep their declaration
// order; question nodes without an explicit Seq are numbered in that order.
type Builder struct {
	nodes []*NodeBuilder
	byID  map[string]*NodeBuilder
	edges []domain.GraphEdge
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		byID: make(map[string]*NodeBuilder),
	}
}

func (b *Builder) add(nodeID string, kind domain.NodeKind) *NodeBuilder {
	if nb, ok := b.byID[nodeID]; ok {
		return nb
	}
	nb := &NodeBuilder{
		nodeID:  nodeID,
		kind:    kind,
		data:    make(map[string]any),
		builder: b,
	}
	b.nodes = append(b.nodes, nb)
	b.byID[nodeID] = nb
	return nb
}

// Question declares a question node. If the node already exists, the
// existing builder is returned.
func (b *Builder) Question(nodeID string) *NodeBuilder {
	return b.add(nodeID, domain.NodeKindQuestion)
}

// Condition declares a condition node.
func (b *Builder) Condition(nodeID string) *NodeBuilder {
	return b.add(nodeID, domain.NodeKindCondition)
}

// Action declares an action node.
func (b *Builder) Action(nodeID string) *NodeBuilder {
	return b.add(nodeID, domain.NodeKindAction)
}

// ScoreGate declares a score gate node.
func (b *Builder) ScoreGate(nodeID string) *NodeBuilder {
	return b.add(nodeID, domain.NodeKindScoreGate)
}

// End declares an end node.
func (b *Builder) End(nodeID string) *NodeBuilder {
	return b.add(nodeID, domain.NodeKindEnd)
}

// Connect adds an unconditional edge between two declared nodes.
func (b *Builder) Connect(from, to string) *Builder {
	b.edge(from, to, "")
	return b
}

// ConnectWhen adds an edge that routes only when the named condition holds.
func (b *Builder) ConnectWhen(from, conditionID, to string) *Builder {
	b.edge(from, to, conditionID)
	return b
}

func (b *Builder) edge(from, to, conditionID string) {
	b.edges = append(b.edges, domain.GraphEdge{
		ID:          fmt.Sprintf("e%d", len(b.edges)+1),
		From:        from,
		To:          to,
		ConditionID: conditionID,
	})
}

// Build assembles the graph. Question nodes without an explicit sequence
// number are numbered in declaration order, and every edge endpoint must
// reference a declared node.
func (b *Builder) Build() (domain.GraphModel, error) {
	var g domain.GraphModel

	seq := 0
	for _, nb := range b.nodes {
		if nb.kind == domain.NodeKindQuestion {
			seq++
			if _, ok := nb.data["seq"]; !ok {
				nb.data["seq"] = seq
			}
			if _, ok := nb.data["type"]; !ok {
				nb.data["type"] = map[string]any{"id": domain.QuestionTypeText}
			}
		}
		g.Nodes = append(g.Nodes, domain.GraphNode{
			ID:   nb.nodeID,
			Kind: nb.kind,
			Data: nb.data,
		})
	}

	for _, e := range b.edges {
		if _, ok := b.byID[e.From]; !ok {
			return domain.GraphModel{}, fmt.Errorf("edge %s references undeclared node %q", e.ID, e.From)
		}
		if _, ok := b.byID[e.To]; !ok {
			return domain.GraphModel{}, fmt.Errorf("edge %s references undeclared node %q", e.ID, e.To)
		}
	}
	g.Edges = append(g.Edges, b.edges...)

	return g, nil
}
