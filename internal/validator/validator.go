// Package validator checks workflow graphs for structural problems before
// they are stored: dangling edges, duplicate question ids, condition edges
// pointing at conditions their node never declares.
package validator

import (
	"fmt"
	"strings"

	"github.com/mbarros/inquira/pkg/domain"
)

// ValidateGraph inspects a workflow graph and returns an error listing every
// structural problem found. A nil return means the graph is safe to store
// and run.
func ValidateGraph(g domain.GraphModel) error {
	var problems []string

	nodeIDs := make(map[string]bool, len(g.Nodes))
	questionIDs := make(map[string]string)
	conditionIDs := make(map[string]map[string]bool)
	questions := 0

	for _, node := range g.Nodes {
		if node.ID == "" {
			problems = append(problems, "node with empty id")
			continue
		}
		if nodeIDs[node.ID] {
			problems = append(problems, fmt.Sprintf("duplicate node id %q", node.ID))
			continue
		}
		nodeIDs[node.ID] = true

		switch node.Kind {
		case domain.NodeKindQuestion:
			questions++
			data, err := node.QuestionData()
			if err != nil {
				problems = append(problems, err.Error())
				continue
			}
			if prev, ok := questionIDs[data.ID]; ok {
				problems = append(problems, fmt.Sprintf("question id %q declared by both node %q and node %q", data.ID, prev, node.ID))
				continue
			}
			questionIDs[data.ID] = node.ID
		case domain.NodeKindCondition:
			data, err := node.ConditionData()
			if err != nil {
				problems = append(problems, err.Error())
				continue
			}
			if len(data.Conditions) == 0 {
				problems = append(problems, fmt.Sprintf("condition node %q declares no conditions", node.ID))
				continue
			}
			ids := make(map[string]bool, len(data.Conditions))
			for _, cond := range data.Conditions {
				if cond.ID == "" {
					problems = append(problems, fmt.Sprintf("condition node %q holds a condition without an id", node.ID))
					continue
				}
				ids[cond.ID] = true
				if cond.Type != domain.ConditionExpression && cond.ValueType == domain.TermQuestion && cond.QuestionID == "" {
					problems = append(problems, fmt.Sprintf("condition %q of node %q compares a question but names none", cond.ID, node.ID))
				}
			}
			conditionIDs[node.ID] = ids
		case domain.NodeKindEnd:
			data, err := node.EndData()
			if err != nil {
				problems = append(problems, err.Error())
				continue
			}
			ids := make(map[string]bool, len(data.Conditions))
			for _, cond := range data.Conditions {
				ids[cond.ID] = true
			}
			conditionIDs[node.ID] = ids
		}
	}

	if questions == 0 {
		problems = append(problems, "graph has no question nodes")
	}

	for _, edge := range g.Edges {
		if !nodeIDs[edge.From] {
			problems = append(problems, fmt.Sprintf("edge %q starts at unknown node %q", edge.ID, edge.From))
		}
		if !nodeIDs[edge.To] {
			problems = append(problems, fmt.Sprintf("edge %q points at unknown node %q", edge.ID, edge.To))
		}
		if edge.ConditionID == "" {
			continue
		}
		ids, ok := conditionIDs[edge.From]
		if !ok {
			// Condition edges only make sense out of condition or end nodes.
			if nodeIDs[edge.From] {
				problems = append(problems, fmt.Sprintf("edge %q carries condition %q but node %q declares no conditions", edge.ID, edge.ConditionID, edge.From))
			}
			continue
		}
		if !ids[edge.ConditionID] {
			problems = append(problems, fmt.Sprintf("edge %q references condition %q, undeclared on node %q", edge.ID, edge.ConditionID, edge.From))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}
