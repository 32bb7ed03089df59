// Package testutils provides graph fixture builders shared by tests.
package testutils

import (
	"github.com/mbarros/inquira/pkg/domain"
)

// QuestionNode builds a question node with the minimum data tests need.
// The extra map is merged over the defaults.
func QuestionNode(nodeID, questionID, label string, seq int, typeID int, extra map[string]any) domain.GraphNode {
	data := map[string]any{
		"id":    questionID,
		"label": label,
		"seq":   seq,
		"type":  map[string]any{"id": typeID},
	}
	for k, v := range extra {
		data[k] = v
	}
	return domain.GraphNode{ID: nodeID, Kind: domain.NodeKindQuestion, Data: data}
}

// BooleanQuestion builds a boolean question node.
func BooleanQuestion(nodeID, questionID, label string, seq int) domain.GraphNode {
	return QuestionNode(nodeID, questionID, label, seq, domain.QuestionTypeBoolean, nil)
}

// SingleChoiceQuestion builds a single-select question node whose options
// carry scores.
func SingleChoiceQuestion(nodeID, questionID, label string, seq int, options []map[string]any) domain.GraphNode {
	return QuestionNode(nodeID, questionID, label, seq, domain.QuestionTypeSingle, map[string]any{
		"options": options,
	})
}

// ConditionNode builds a comparison condition node holding the given
// conditions.
func ConditionNode(nodeID string, conditions ...map[string]any) domain.GraphNode {
	conds := make([]any, len(conditions))
	for i, c := range conditions {
		conds[i] = c
	}
	return domain.GraphNode{
		ID:   nodeID,
		Kind: domain.NodeKindCondition,
		Data: map[string]any{
			"conditionType": "comparison",
			"conditions":    conds,
		},
	}
}

// FixedComparison builds one comparison condition record against a fixed
// right-hand value.
func FixedComparison(condID, questionID, valueType, operator string, compare any) map[string]any {
	return map[string]any{
		"id":                condID,
		"type":              "comparison",
		"valueType":         "question",
		"questionId":        questionID,
		"questionValueType": valueType,
		"operator":          operator,
		"compareValueType":  "fixed",
		"compareValue":      compare,
	}
}

// ActionNode builds an action node.
func ActionNode(nodeID, actionType string, params map[string]any) domain.GraphNode {
	return domain.GraphNode{
		ID:   nodeID,
		Kind: domain.NodeKindAction,
		Data: map[string]any{
			"type":   actionType,
			"params": params,
		},
	}
}

// Edge builds a plain edge.
func Edge(id, from, to string) domain.GraphEdge {
	return domain.GraphEdge{ID: id, From: from, To: to}
}

// ConditionEdge builds an edge that fires when the named condition is true.
func ConditionEdge(id, from, to, conditionID string) domain.GraphEdge {
	return domain.GraphEdge{ID: id, From: from, To: to, ConditionID: conditionID}
}

// LinearGraph builds n text questions connected in declared order without
// any condition nodes.
func LinearGraph(n int) domain.GraphModel {
	var g domain.GraphModel
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		g.Nodes = append(g.Nodes, QuestionNode("n-"+id, "q-"+id, "Question "+id, i+1, domain.QuestionTypeText, nil))
	}
	return g
}
