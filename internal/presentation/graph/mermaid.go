// Package graph renders workflow graphs for humans, currently as Mermaid
// flowcharts.
package graph

import (
	"fmt"
	"strings"

	"github.com/mbarros/inquira/pkg/domain"
)

// Overlay contains dynamic run state to visualize on the graph.
type Overlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces Mermaid flowchart syntax from a workflow graph.
// It applies semantic shapes per node kind:
//   - Question: [/Parallelogram/] (input)
//   - Condition: {Diamond}
//   - Action: [[Subroutine]]
//   - Score gate / End: ((Circle))
//
// Edges carrying a condition id are labeled with it (or the edge's own
// label) so the branch routing stays readable.
func GenerateMermaid(g domain.GraphModel, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Kind {
		case domain.NodeKindQuestion:
			opener, closer = "[/", "/]"
		case domain.NodeKindCondition:
			opener, closer = "{", "}"
		case domain.NodeKindAction:
			opener, closer = "[[", "]]"
		case domain.NodeKindScoreGate, domain.NodeKindEnd:
			opener, closer = "((", "))"
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, nodeLabel(node), closer))
	}

	for _, edge := range g.Edges {
		safeFrom := sanitizeMermaidID(edge.From)
		safeTo := sanitizeMermaidID(edge.To)

		arrow := "-->"
		if label := edgeLabel(edge); label != "" {
			safeLabel := strings.ReplaceAll(label, "\"", "'")
			arrow = fmt.Sprintf("-- \"%s\" -->", safeLabel)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeFrom, arrow, safeTo))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

// nodeLabel picks the most descriptive short text available for a node.
func nodeLabel(node domain.GraphNode) string {
	switch node.Kind {
	case domain.NodeKindQuestion:
		if data, err := node.QuestionData(); err == nil && data.Label != "" {
			return data.Label
		}
	case domain.NodeKindAction:
		if data, err := node.ActionData(); err == nil && data.Type != "" {
			return string(data.Type)
		}
	case domain.NodeKindCondition:
		if data, err := node.ConditionData(); err == nil && len(data.Conditions) > 0 && data.Conditions[0].Name != "" {
			return data.Conditions[0].Name
		}
	}
	return node.ID
}

// edgeLabel prefers the authored label, falling back to the condition id.
func edgeLabel(edge domain.GraphEdge) string {
	if edge.Label != "" {
		return edge.Label
	}
	return edge.ConditionID
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
